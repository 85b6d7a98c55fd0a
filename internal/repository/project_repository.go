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

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

// Create creates a new project
func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (id, user_id, name, category)
		VALUES ($1, $2, $3, $4)
	`, project.ID, project.UserID, project.Name, project.Category)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project := &domain.Project{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, category FROM projects WHERE id = $1
	`, id).Scan(&project.ID, &project.UserID, &project.Name, &project.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListByOwner retrieves all projects owned by a user
func (r *ProjectRepositoryImpl) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, category FROM projects WHERE user_id = $1 ORDER BY name ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project := &domain.Project{}
		if err := rows.Scan(&project.ID, &project.UserID, &project.Name, &project.Category); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// Update touches name and category only. user_id is never part of any
// UPDATE statement: the owner is immutable after creation.
func (r *ProjectRepositoryImpl) Update(ctx context.Context, id uuid.UUID, name, category string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects SET name = $1, category = $2 WHERE id = $3
	`, name, category, id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the project's trades and the project itself in one
// transaction. Trades of sibling projects are untouched.
func (r *ProjectRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin project delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM trades WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project trades: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit project delete: %w", err)
	}
	return nil
}

// OwnerOf resolves the owning user of a project
func (r *ProjectRepositoryImpl) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM projects WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve project owner: %w", err)
	}
	return owner, nil
}
