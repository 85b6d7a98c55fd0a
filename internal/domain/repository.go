package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Register inserts a new user. The very first account ever created is
	// forced to the admin role; the count check and insert share one
	// transaction. A duplicate email surfaces as ErrEmailTaken.
	Register(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves all users ordered by creation time
	List(ctx context.Context) ([]*User, error)

	// UpdateRole sets a user's role
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error

	// Delete hard-deletes a user row. Projects, trades and setups owned by
	// the user are deliberately left in place.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Project, error)

	// Update touches name and category only; the owner is immutable.
	Update(ctx context.Context, id uuid.UUID, name, category string) error

	// DeleteCascade removes the project and all of its trades in one
	// transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// OwnerOf resolves the owning user of a project.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	Create(ctx context.Context, trade *Trade, screenshot []byte) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trade, error)

	// ListByProject returns a project's trades ordered by date descending
	// (lexicographic over ISO dates).
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Trade, error)

	// ListByOwner returns every trade under any of the owner's projects,
	// joined with the project name, date descending.
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*TradeWithProject, error)

	// Update resupplies every field. The stored screenshot is preserved
	// unless replaceScreenshot is set.
	Update(ctx context.Context, trade *Trade, screenshot []byte, replaceScreenshot bool) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Screenshot fetches the raw attachment bytes for one trade.
	Screenshot(ctx context.Context, id uuid.UUID) ([]byte, error)

	// OwnerOf resolves a trade's owner through its project.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// SetupRepository defines the interface for backtest setup data operations
type SetupRepository interface {
	// CreateWithScreenshots inserts the setup row and every attachment row
	// within one transaction; all commit together or none do.
	CreateWithScreenshots(ctx context.Context, setup *BacktestSetup, attachments []Attachment) error

	GetByID(ctx context.Context, id uuid.UUID) (*BacktestSetup, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*BacktestSetup, error)
	Update(ctx context.Context, setup *BacktestSetup) error

	// DeleteCascade removes the setup and its screenshots in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// Screenshot fetches one image's bytes and filename.
	Screenshot(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// OwnerOf resolves a setup's owner.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// ScreenshotOwnerOf resolves a screenshot's owner through its setup.
	ScreenshotOwnerOf(ctx context.Context, screenshotID uuid.UUID) (uuid.UUID, error)
}
