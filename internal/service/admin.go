package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
)

// AdminService covers the admin-only surface: account management and
// read-only, cross-user audit visibility. It never grants journal CRUD over
// other users' data.
type AdminService struct {
	users  domain.UserRepository
	trades domain.TradeRepository
	setups domain.SetupRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	users domain.UserRepository,
	trades domain.TradeRepository,
	setups domain.SetupRepository,
) *AdminService {
	return &AdminService{users: users, trades: trades, setups: setups}
}

// ListUsers returns all accounts
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// ToggleRole flips a user strictly between admin and user.
func (s *AdminService) ToggleRole(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := domain.RoleAdmin
	if user.Role == domain.RoleAdmin {
		role = domain.RoleUser
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("failed to toggle role for %s: %w", user.Username, err)
	}

	user.Role = role
	return user, nil
}

// DeleteUser removes an account. An admin can never delete themselves.
// The user's projects, trades and setups are not cascaded.
func (s *AdminService) DeleteUser(ctx context.Context, actor domain.Actor, userID uuid.UUID) error {
	if userID == actor.ID {
		return domain.ErrSelfDelete
	}
	return s.users.Delete(ctx, userID)
}

// UserActivity is the read-only audit view over one user's journal: their
// trades across all projects and their backtest setups, newest first.
type UserActivity struct {
	User   *domain.User               `json:"user"`
	Trades []*domain.TradeWithProject `json:"trades"`
	Setups []*domain.BacktestSetup    `json:"setups"`
}

// GetUserActivity assembles the audit view for one user
func (s *AdminService) GetUserActivity(ctx context.Context, userID uuid.UUID) (*UserActivity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	trades, err := s.trades.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades for %s: %w", user.Username, err)
	}

	setups, err := s.setups.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load setups for %s: %w", user.Username, err)
	}

	return &UserActivity{User: user, Trades: trades, Setups: setups}, nil
}
