package usecase

import (
	"context"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
	"tradejournal/internal/service"
)

// TradeInput enumerates the fields of a trade write. Date and RR stay
// opaque strings, validated only when aggregated. Profit is optional and
// stays absent when the outcome is not booked yet.
type TradeInput struct {
	Date        string
	Symbol      string
	Direction   string
	Entry       float64
	Exit        float64
	LotSize     float64
	RR          string
	SessionName string
	Result      string
	Profit      *float64
	Notes       string
}

// TradeService is the trade ledger: CRUD over trade records scoped to a
// project, plus the dashboard computation.
type TradeService struct {
	auth   *service.OwnershipService
	trades domain.TradeRepository
}

// NewTradeService creates a new TradeService
func NewTradeService(auth *service.OwnershipService, trades domain.TradeRepository) *TradeService {
	return &TradeService{auth: auth, trades: trades}
}

// Create logs a trade under a project the actor owns. The attachment, when
// present, is stored as opaque bytes.
func (s *TradeService) Create(ctx context.Context, actor domain.Actor, projectID uuid.UUID, in TradeInput, attachment *domain.Attachment) (*domain.Trade, error) {
	if err := s.auth.Authorize(ctx, actor, domain.ProjectRef(projectID)); err != nil {
		return nil, err
	}

	trade := &domain.Trade{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Date:        in.Date,
		Symbol:      in.Symbol,
		Direction:   in.Direction,
		Entry:       in.Entry,
		Exit:        in.Exit,
		LotSize:     in.LotSize,
		RR:          in.RR,
		SessionName: in.SessionName,
		Result:      in.Result,
		Profit:      in.Profit,
		Notes:       in.Notes,
	}

	var data []byte
	if attachment != nil {
		data = attachment.Data
	}
	if err := s.trades.Create(ctx, trade, data); err != nil {
		return nil, err
	}
	return trade, nil
}

// Get returns one trade after an ownership check through its project
func (s *TradeService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Trade, error) {
	if err := s.auth.Authorize(ctx, actor, domain.TradeRef(id)); err != nil {
		return nil, err
	}
	return s.trades.GetByID(ctx, id)
}

// List returns a project's trades ordered by date descending
func (s *TradeService) List(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]*domain.Trade, error) {
	if err := s.auth.Authorize(ctx, actor, domain.ProjectRef(projectID)); err != nil {
		return nil, err
	}
	return s.trades.ListByProject(ctx, projectID)
}

// ListAll returns every trade of the actor across projects, with project
// names, for the setups overview page.
func (s *TradeService) ListAll(ctx context.Context, actor domain.Actor) ([]*domain.TradeWithProject, error) {
	return s.trades.ListByOwner(ctx, actor.ID)
}

// Dashboard returns a project's trades together with freshly computed
// metrics. Aggregates are recomputed on every call.
func (s *TradeService) Dashboard(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]*domain.Trade, service.Stats, error) {
	trades, err := s.List(ctx, actor, projectID)
	if err != nil {
		return nil, service.Stats{}, err
	}
	return trades, service.ComputeStats(trades), nil
}

// Update resupplies every field of a trade. The stored screenshot is kept
// unless a new attachment is explicitly supplied.
func (s *TradeService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, in TradeInput, attachment *domain.Attachment) (*domain.Trade, error) {
	if err := s.auth.Authorize(ctx, actor, domain.TradeRef(id)); err != nil {
		return nil, err
	}

	current, err := s.trades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trade := &domain.Trade{
		ID:          id,
		ProjectID:   current.ProjectID,
		Date:        in.Date,
		Symbol:      in.Symbol,
		Direction:   in.Direction,
		Entry:       in.Entry,
		Exit:        in.Exit,
		LotSize:     in.LotSize,
		RR:          in.RR,
		SessionName: in.SessionName,
		Result:      in.Result,
		Profit:      in.Profit,
		Notes:       in.Notes,
	}

	var data []byte
	replace := attachment != nil
	if replace {
		data = attachment.Data
	}
	if err := s.trades.Update(ctx, trade, data, replace); err != nil {
		return nil, err
	}

	trade.HasScreenshot = current.HasScreenshot || replace
	return trade, nil
}

// Delete hard-deletes a trade
func (s *TradeService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.auth.Authorize(ctx, actor, domain.TradeRef(id)); err != nil {
		return err
	}
	return s.trades.Delete(ctx, id)
}

// Screenshot returns the raw attachment bytes of one trade
func (s *TradeService) Screenshot(ctx context.Context, actor domain.Actor, id uuid.UUID) ([]byte, error) {
	if err := s.auth.Authorize(ctx, actor, domain.TradeRef(id)); err != nil {
		return nil, err
	}
	return s.trades.Screenshot(ctx, id)
}
