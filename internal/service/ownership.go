package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
)

// OwnerResolver resolves the owning user of one entity kind.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// OwnerResolverFunc adapts a function to the OwnerResolver interface.
type OwnerResolverFunc func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

func (f OwnerResolverFunc) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return f(ctx, id)
}

// OwnershipService is the single gate for actor-vs-entity access rights.
// Every ledger operation authorizes through it before touching the store.
type OwnershipService struct {
	resolvers map[domain.EntityKind]OwnerResolver
}

// NewOwnershipService creates an OwnershipService over the closed set of
// entity kinds. Trades resolve through their project, screenshots through
// their setup.
func NewOwnershipService(
	projects OwnerResolver,
	trades OwnerResolver,
	setups OwnerResolver,
	screenshots OwnerResolver,
) *OwnershipService {
	return &OwnershipService{
		resolvers: map[domain.EntityKind]OwnerResolver{
			domain.KindProject:    projects,
			domain.KindTrade:      trades,
			domain.KindSetup:      setups,
			domain.KindScreenshot: screenshots,
		},
	}
}

// Authorize returns nil when the actor owns the referenced entity,
// domain.ErrNotFound when it does not exist, and domain.ErrForbidden when it
// belongs to someone else. Both denials satisfy domain.IsDenied and must be
// surfaced identically so callers cannot probe for existence.
//
// The admin role carries no ownership here: cross-user audit reads go
// through AdminService, never through Authorize.
func (s *OwnershipService) Authorize(ctx context.Context, actor domain.Actor, ref domain.EntityRef) error {
	resolver, ok := s.resolvers[ref.Kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", ref.Kind)
	}

	owner, err := resolver.OwnerOf(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to resolve owner of %s %s: %w", ref.Kind, ref.ID, err)
	}

	if owner != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}
