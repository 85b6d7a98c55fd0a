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

// SetupRepositoryImpl implements the SetupRepository interface
type SetupRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSetupRepository creates a new SetupRepository
func NewSetupRepository(db *pgxpool.Pool) domain.SetupRepository {
	return &SetupRepositoryImpl{db: db}
}

const setupColumns = `id, user_id, date, title, entry_notes, result, review_notes,
	session_name, timeframe, market, entry_criteria, exit_criteria, r_multiple, profit`

// CreateWithScreenshots inserts the setup row and every attachment row
// within one transaction. Any insert failure rolls back the whole batch;
// partial writes are never observable.
func (r *SetupRepositoryImpl) CreateWithScreenshots(ctx context.Context, setup *domain.BacktestSetup, attachments []domain.Attachment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin setup create: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO backtest_setups (`+setupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		setup.ID,
		setup.UserID,
		setup.Date,
		setup.Title,
		setup.EntryNotes,
		setup.Result,
		setup.ReviewNotes,
		setup.SessionName,
		setup.Timeframe,
		setup.Market,
		setup.EntryCriteria,
		setup.ExitCriteria,
		setup.RMultiple,
		setup.Profit,
	)
	if err != nil {
		return fmt.Errorf("failed to create setup: %w", err)
	}

	setup.ScreenshotIDs = setup.ScreenshotIDs[:0]
	for _, a := range attachments {
		shotID := uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO backtest_screenshots (id, setup_id, image, filename)
			VALUES ($1, $2, $3, $4)
		`, shotID, setup.ID, a.Data, a.Filename)
		if err != nil {
			return fmt.Errorf("failed to attach screenshot %q: %w", a.Filename, err)
		}
		setup.ScreenshotIDs = append(setup.ScreenshotIDs, shotID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit setup create: %w", err)
	}
	return nil
}

// GetByID retrieves a setup with its screenshot ids (metadata only)
func (r *SetupRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.BacktestSetup, error) {
	setup := &domain.BacktestSetup{}
	err := r.db.QueryRow(ctx, `SELECT `+setupColumns+` FROM backtest_setups WHERE id = $1`, id).Scan(
		&setup.ID,
		&setup.UserID,
		&setup.Date,
		&setup.Title,
		&setup.EntryNotes,
		&setup.Result,
		&setup.ReviewNotes,
		&setup.SessionName,
		&setup.Timeframe,
		&setup.Market,
		&setup.EntryCriteria,
		&setup.ExitCriteria,
		&setup.RMultiple,
		&setup.Profit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setup: %w", err)
	}

	if setup.ScreenshotIDs, err = r.screenshotIDs(ctx, id); err != nil {
		return nil, err
	}
	return setup, nil
}

// ListByOwner retrieves a user's setups newest first, each with its
// screenshot ids
func (r *SetupRepositoryImpl) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domain.BacktestSetup, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+setupColumns+` FROM backtest_setups WHERE user_id = $1 ORDER BY date DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query setups: %w", err)
	}
	defer rows.Close()

	var setups []*domain.BacktestSetup
	for rows.Next() {
		setup := &domain.BacktestSetup{}
		if err := rows.Scan(
			&setup.ID,
			&setup.UserID,
			&setup.Date,
			&setup.Title,
			&setup.EntryNotes,
			&setup.Result,
			&setup.ReviewNotes,
			&setup.SessionName,
			&setup.Timeframe,
			&setup.Market,
			&setup.EntryCriteria,
			&setup.ExitCriteria,
			&setup.RMultiple,
			&setup.Profit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan setup: %w", err)
		}
		setups = append(setups, setup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setups: %w", err)
	}

	for _, s := range setups {
		if s.ScreenshotIDs, err = r.screenshotIDs(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return setups, nil
}

// Update resupplies every setup field. Screenshots are not touched here;
// they are fixed at creation time.
func (r *SetupRepositoryImpl) Update(ctx context.Context, setup *domain.BacktestSetup) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE backtest_setups SET
			date = $1, title = $2, entry_notes = $3, result = $4, review_notes = $5,
			session_name = $6, timeframe = $7, market = $8, entry_criteria = $9,
			exit_criteria = $10, r_multiple = $11, profit = $12
		WHERE id = $13
	`,
		setup.Date,
		setup.Title,
		setup.EntryNotes,
		setup.Result,
		setup.ReviewNotes,
		setup.SessionName,
		setup.Timeframe,
		setup.Market,
		setup.EntryCriteria,
		setup.ExitCriteria,
		setup.RMultiple,
		setup.Profit,
		setup.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update setup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the setup and its screenshots in one transaction,
// so no screenshot row ever outlives its setup.
func (r *SetupRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin setup delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM backtest_screenshots WHERE setup_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete setup screenshots: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM backtest_setups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete setup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit setup delete: %w", err)
	}
	return nil
}

// Screenshot fetches one image's bytes and filename
func (r *SetupRepositoryImpl) Screenshot(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	var data []byte
	var filename string
	err := r.db.QueryRow(ctx, `
		SELECT image, filename FROM backtest_screenshots WHERE id = $1
	`, id).Scan(&data, &filename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get setup screenshot: %w", err)
	}
	return data, filename, nil
}

// OwnerOf resolves a setup's owner
func (r *SetupRepositoryImpl) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM backtest_setups WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve setup owner: %w", err)
	}
	return owner, nil
}

// ScreenshotOwnerOf resolves a screenshot's owner through its parent setup
func (r *SetupRepositoryImpl) ScreenshotOwnerOf(ctx context.Context, screenshotID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT s.user_id
		FROM backtest_screenshots bs
		JOIN backtest_setups s ON bs.setup_id = s.id
		WHERE bs.id = $1
	`, screenshotID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve screenshot owner: %w", err)
	}
	return owner, nil
}

func (r *SetupRepositoryImpl) screenshotIDs(ctx context.Context, setupID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM backtest_screenshots WHERE setup_id = $1 ORDER BY filename ASC
	`, setupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query screenshot ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan screenshot id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating screenshot ids: %w", err)
	}
	return ids, nil
}
