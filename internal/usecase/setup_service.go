package usecase

import (
	"context"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
	"tradejournal/internal/service"
)

// SetupInput enumerates the fields of a backtest setup write. RMultiple
// mirrors the rr policy: opaque text, validated only at use.
type SetupInput struct {
	Date          string
	Title         string
	EntryNotes    string
	Result        string
	ReviewNotes   string
	SessionName   string
	Timeframe     string
	Market        string
	EntryCriteria string
	ExitCriteria  string
	RMultiple     string
	Profit        *float64
}

// SetupService is the setup ledger: owner-scoped CRUD over backtest setups
// and their attached screenshots. There is no cross-user sharing.
type SetupService struct {
	auth   *service.OwnershipService
	setups domain.SetupRepository
}

// NewSetupService creates a new SetupService
func NewSetupService(auth *service.OwnershipService, setups domain.SetupRepository) *SetupService {
	return &SetupService{auth: auth, setups: setups}
}

// Create inserts the setup and all of its screenshots atomically: every row
// commits together or none do.
func (s *SetupService) Create(ctx context.Context, actor domain.Actor, in SetupInput, attachments []domain.Attachment) (*domain.BacktestSetup, error) {
	setup := s.fromInput(in)
	setup.ID = uuid.New()
	setup.UserID = actor.ID

	if err := s.setups.CreateWithScreenshots(ctx, setup, attachments); err != nil {
		return nil, err
	}
	return setup, nil
}

// Get returns one setup with its screenshot ids
func (s *SetupService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.BacktestSetup, error) {
	if err := s.auth.Authorize(ctx, actor, domain.SetupRef(id)); err != nil {
		return nil, err
	}
	return s.setups.GetByID(ctx, id)
}

// List returns the actor's setups newest first
func (s *SetupService) List(ctx context.Context, actor domain.Actor) ([]*domain.BacktestSetup, error) {
	return s.setups.ListByOwner(ctx, actor.ID)
}

// Update resupplies every setup field. Screenshots are fixed at creation.
func (s *SetupService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, in SetupInput) (*domain.BacktestSetup, error) {
	if err := s.auth.Authorize(ctx, actor, domain.SetupRef(id)); err != nil {
		return nil, err
	}

	setup := s.fromInput(in)
	setup.ID = id
	setup.UserID = actor.ID
	if err := s.setups.Update(ctx, setup); err != nil {
		return nil, err
	}
	return setup, nil
}

// Delete removes the setup together with its screenshots
func (s *SetupService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.auth.Authorize(ctx, actor, domain.SetupRef(id)); err != nil {
		return err
	}
	return s.setups.DeleteCascade(ctx, id)
}

// Screenshot fetches one image by id, ownership-checked through its parent
// setup. Images are fetched individually since payloads may be large.
func (s *SetupService) Screenshot(ctx context.Context, actor domain.Actor, id uuid.UUID) ([]byte, string, error) {
	if err := s.auth.Authorize(ctx, actor, domain.ScreenshotRef(id)); err != nil {
		return nil, "", err
	}
	return s.setups.Screenshot(ctx, id)
}

func (s *SetupService) fromInput(in SetupInput) *domain.BacktestSetup {
	return &domain.BacktestSetup{
		Date:          in.Date,
		Title:         in.Title,
		EntryNotes:    in.EntryNotes,
		Result:        in.Result,
		ReviewNotes:   in.ReviewNotes,
		SessionName:   in.SessionName,
		Timeframe:     in.Timeframe,
		Market:        in.Market,
		EntryCriteria: in.EntryCriteria,
		ExitCriteria:  in.ExitCriteria,
		RMultiple:     in.RMultiple,
		Profit:        in.Profit,
	}
}
