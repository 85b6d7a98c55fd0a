package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
)

// fakeResolver maps entity ids to owners; unknown ids are not found.
type fakeResolver map[uuid.UUID]uuid.UUID

func (f fakeResolver) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	owner, ok := f[id]
	if !ok {
		return uuid.Nil, domain.ErrNotFound
	}
	return owner, nil
}

func newTestOwnership(projects, trades, setups, screenshots fakeResolver) *OwnershipService {
	return NewOwnershipService(projects, trades, setups, screenshots)
}

func TestAuthorizeOwner(t *testing.T) {
	owner := uuid.New()
	projectID := uuid.New()
	svc := newTestOwnership(fakeResolver{projectID: owner}, fakeResolver{}, fakeResolver{}, fakeResolver{})

	err := svc.Authorize(context.Background(), domain.Actor{ID: owner}, domain.ProjectRef(projectID))
	assert.NoError(t, err)
}

func TestAuthorizeForeignEntity(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	tradeID := uuid.New()
	svc := newTestOwnership(fakeResolver{}, fakeResolver{tradeID: owner}, fakeResolver{}, fakeResolver{})

	err := svc.Authorize(context.Background(), domain.Actor{ID: stranger}, domain.TradeRef(tradeID))
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, domain.IsDenied(err))
}

func TestAuthorizeMissingEntity(t *testing.T) {
	svc := newTestOwnership(fakeResolver{}, fakeResolver{}, fakeResolver{}, fakeResolver{})

	err := svc.Authorize(context.Background(), domain.Actor{ID: uuid.New()}, domain.TradeRef(uuid.New()))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, domain.IsDenied(err))
}

// A trade under a foreign project and a trade that does not exist must be
// indistinguishable to the caller: both are denials.
func TestAuthorizeDenialIndistinguishable(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	existing := uuid.New()
	svc := newTestOwnership(fakeResolver{}, fakeResolver{existing: owner}, fakeResolver{}, fakeResolver{})

	errExisting := svc.Authorize(context.Background(), domain.Actor{ID: stranger}, domain.TradeRef(existing))
	errMissing := svc.Authorize(context.Background(), domain.Actor{ID: stranger}, domain.TradeRef(uuid.New()))

	assert.True(t, domain.IsDenied(errExisting))
	assert.True(t, domain.IsDenied(errMissing))
}

// Admin role grants no journal ownership: authorization is strictly
// owner-based regardless of role.
func TestAuthorizeAdminIsNotOwner(t *testing.T) {
	owner := uuid.New()
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	setupID := uuid.New()
	svc := newTestOwnership(fakeResolver{}, fakeResolver{}, fakeResolver{setupID: owner}, fakeResolver{})

	err := svc.Authorize(context.Background(), admin, domain.SetupRef(setupID))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorizeScreenshotThroughSetup(t *testing.T) {
	owner := uuid.New()
	shotID := uuid.New()
	svc := newTestOwnership(fakeResolver{}, fakeResolver{}, fakeResolver{}, fakeResolver{shotID: owner})

	assert.NoError(t, svc.Authorize(context.Background(), domain.Actor{ID: owner}, domain.ScreenshotRef(shotID)))
	assert.ErrorIs(t,
		svc.Authorize(context.Background(), domain.Actor{ID: uuid.New()}, domain.ScreenshotRef(shotID)),
		domain.ErrForbidden)
}

func TestAuthorizeUnknownKind(t *testing.T) {
	svc := newTestOwnership(fakeResolver{}, fakeResolver{}, fakeResolver{}, fakeResolver{})

	err := svc.Authorize(context.Background(), domain.Actor{ID: uuid.New()}, domain.EntityRef{Kind: "widget", ID: uuid.New()})
	require.Error(t, err)
	assert.False(t, domain.IsDenied(err), "unknown kind is a programming error, not a denial")
}
