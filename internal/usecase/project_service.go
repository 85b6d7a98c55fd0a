package usecase

import (
	"context"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
	"tradejournal/internal/service"
)

// ProjectService handles project CRUD gated by the ownership model.
type ProjectService struct {
	auth     *service.OwnershipService
	projects domain.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(auth *service.OwnershipService, projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{auth: auth, projects: projects}
}

// Create creates a project owned by the actor
func (s *ProjectService) Create(ctx context.Context, actor domain.Actor, name, category string) (*domain.Project, error) {
	project := &domain.Project{
		ID:       uuid.New(),
		UserID:   actor.ID,
		Name:     name,
		Category: category,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the actor's projects
func (s *ProjectService) List(ctx context.Context, actor domain.Actor) ([]*domain.Project, error) {
	return s.projects.ListByOwner(ctx, actor.ID)
}

// Get returns one project after an ownership check
func (s *ProjectService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Project, error) {
	if err := s.auth.Authorize(ctx, actor, domain.ProjectRef(id)); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

// Update renames or recategorizes a project. The owner is immutable.
func (s *ProjectService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, category string) error {
	if err := s.auth.Authorize(ctx, actor, domain.ProjectRef(id)); err != nil {
		return err
	}
	return s.projects.Update(ctx, id, name, category)
}

// Delete removes the project and all of its trades in one transaction.
func (s *ProjectService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.auth.Authorize(ctx, actor, domain.ProjectRef(id)); err != nil {
		return err
	}
	return s.projects.DeleteCascade(ctx, id)
}
