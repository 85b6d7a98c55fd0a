package domain

import "github.com/google/uuid"

// EntityKind tags the closed set of entity types the ownership model
// knows how to resolve.
type EntityKind string

const (
	KindProject    EntityKind = "project"
	KindTrade      EntityKind = "trade"
	KindSetup      EntityKind = "setup"
	KindScreenshot EntityKind = "screenshot"
)

// EntityRef identifies one entity for an ownership check.
type EntityRef struct {
	Kind EntityKind
	ID   uuid.UUID
}

func ProjectRef(id uuid.UUID) EntityRef    { return EntityRef{Kind: KindProject, ID: id} }
func TradeRef(id uuid.UUID) EntityRef      { return EntityRef{Kind: KindTrade, ID: id} }
func SetupRef(id uuid.UUID) EntityRef      { return EntityRef{Kind: KindSetup, ID: id} }
func ScreenshotRef(id uuid.UUID) EntityRef { return EntityRef{Kind: KindScreenshot, ID: id} }
