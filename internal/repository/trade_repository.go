package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradejournal/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

const tradeColumns = `id, project_id, date, symbol, direction, entry, exit, lot_size,
	rr, session_name, result, profit, notes, screenshot IS NOT NULL`

// Create creates a new trade with an optional screenshot payload
func (r *TradeRepositoryImpl) Create(ctx context.Context, trade *domain.Trade, screenshot []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO trades (
			id, project_id, date, symbol, direction, entry, exit, lot_size,
			rr, session_name, result, profit, notes, screenshot
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`,
		trade.ID,
		trade.ProjectID,
		trade.Date,
		trade.Symbol,
		trade.Direction,
		trade.Entry,
		trade.Exit,
		trade.LotSize,
		trade.RR,
		trade.SessionName,
		trade.Result,
		trade.Profit,
		trade.Notes,
		screenshot,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	trade.HasScreenshot = len(screenshot) > 0
	return nil
}

// GetByID retrieves a trade by ID. Screenshot bytes are not loaded here.
func (r *TradeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trade, error) {
	trade := &domain.Trade{}
	err := r.db.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = $1`, id).Scan(
		&trade.ID,
		&trade.ProjectID,
		&trade.Date,
		&trade.Symbol,
		&trade.Direction,
		&trade.Entry,
		&trade.Exit,
		&trade.LotSize,
		&trade.RR,
		&trade.SessionName,
		&trade.Result,
		&trade.Profit,
		&trade.Notes,
		&trade.HasScreenshot,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

// ListByProject returns a project's trades newest first. Ordering is the
// lexicographic sort of the ISO date text, which is the storage contract.
func (r *TradeRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Trade, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE project_id = $1 ORDER BY date DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// ListByOwner returns every trade under the owner's projects, joined with
// the project name, newest first.
func (r *TradeRepositoryImpl) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domain.TradeWithProject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.project_id, t.date, t.symbol, t.direction, t.entry, t.exit,
		       t.lot_size, t.rr, t.session_name, t.result, t.profit, t.notes,
		       t.screenshot IS NOT NULL, p.name
		FROM trades t
		JOIN projects p ON t.project_id = p.id
		WHERE p.user_id = $1
		ORDER BY t.date DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query owner trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.TradeWithProject
	for rows.Next() {
		t := &domain.TradeWithProject{}
		if err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.Date,
			&t.Symbol,
			&t.Direction,
			&t.Entry,
			&t.Exit,
			&t.LotSize,
			&t.RR,
			&t.SessionName,
			&t.Result,
			&t.Profit,
			&t.Notes,
			&t.HasScreenshot,
			&t.ProjectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan owner trade: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owner trades: %w", err)
	}
	return trades, nil
}

// Update resupplies every field. The stored screenshot is preserved unless
// replaceScreenshot is set, in which case the new bytes (possibly nil)
// replace it.
func (r *TradeRepositoryImpl) Update(ctx context.Context, trade *domain.Trade, screenshot []byte, replaceScreenshot bool) error {
	query := `
		UPDATE trades SET
			date = $1, symbol = $2, direction = $3, entry = $4, exit = $5,
			lot_size = $6, rr = $7, session_name = $8, result = $9,
			profit = $10, notes = $11
		WHERE id = $12
	`
	args := []any{
		trade.Date,
		trade.Symbol,
		trade.Direction,
		trade.Entry,
		trade.Exit,
		trade.LotSize,
		trade.RR,
		trade.SessionName,
		trade.Result,
		trade.Profit,
		trade.Notes,
		trade.ID,
	}

	if replaceScreenshot {
		query = `
			UPDATE trades SET
				date = $1, symbol = $2, direction = $3, entry = $4, exit = $5,
				lot_size = $6, rr = $7, session_name = $8, result = $9,
				profit = $10, notes = $11, screenshot = $12
			WHERE id = $13
		`
		args = []any{
			trade.Date,
			trade.Symbol,
			trade.Direction,
			trade.Entry,
			trade.Exit,
			trade.LotSize,
			trade.RR,
			trade.SessionName,
			trade.Result,
			trade.Profit,
			trade.Notes,
			screenshot,
			trade.ID,
		}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a trade, single statement, no tombstone
func (r *TradeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Screenshot fetches the raw attachment bytes for one trade
func (r *TradeRepositoryImpl) Screenshot(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT screenshot FROM trades WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trade screenshot: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// OwnerOf resolves a trade's owner through its project join
func (r *TradeRepositoryImpl) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT p.user_id
		FROM trades t
		JOIN projects p ON t.project_id = p.id
		WHERE t.id = $1
	`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve trade owner: %w", err)
	}
	return owner, nil
}

func collectTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		trade := &domain.Trade{}
		if err := rows.Scan(
			&trade.ID,
			&trade.ProjectID,
			&trade.Date,
			&trade.Symbol,
			&trade.Direction,
			&trade.Entry,
			&trade.Exit,
			&trade.LotSize,
			&trade.RR,
			&trade.SessionName,
			&trade.Result,
			&trade.Profit,
			&trade.Notes,
			&trade.HasScreenshot,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return trades, nil
}
