package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/usecase"
)

// ProjectHandler handles project CRUD and the per-project dashboard
type ProjectHandler struct {
	projects *usecase.ProjectService
	trades   *usecase.TradeService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects *usecase.ProjectService, trades *usecase.TradeService) *ProjectHandler {
	return &ProjectHandler{projects: projects, trades: trades}
}

// List returns the actor's projects
// GET /api/projects
func (h *ProjectHandler) List(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	projects, err := h.projects.List(c.Request().Context(), actor)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list projects", err)
	}
	return SuccessResponse(c, projects)
}

// Create creates a project owned by the actor
// POST /api/projects
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	name := c.FormValue("name")
	if name == "" {
		return BadRequestResponse(c, "Project name is required")
	}

	project, err := h.projects.Create(c.Request().Context(), actor, name, c.FormValue("category"))
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create project", err)
	}
	return CreatedResponse(c, project)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	project, err := h.projects.Get(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to get project")
	}
	return SuccessResponse(c, project)
}

// Update renames or recategorizes a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	name := c.FormValue("name")
	if name == "" {
		return BadRequestResponse(c, "Project name is required")
	}

	if err := h.projects.Update(c.Request().Context(), actor, id, name, c.FormValue("category")); err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to update project")
	}
	return SuccessMessageResponse(c, "Project updated", nil)
}

// Delete removes a project and all of its trades
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	if err := h.projects.Delete(c.Request().Context(), actor, id); err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to delete project")
	}
	return SuccessMessageResponse(c, "Project deleted", nil)
}

// Dashboard returns a project's trades plus freshly computed metrics
// GET /api/projects/:id/dashboard
func (h *ProjectHandler) Dashboard(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	trades, stats, err := h.trades.Dashboard(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to build dashboard")
	}
	return SuccessResponse(c, map[string]interface{}{
		"trades": trades,
		"stats":  dto.FromStats(stats),
	})
}

// actorAndID pulls the authenticated actor and the :id path param. When ok
// is false the error response has already been written and the handler must
// return nil.
func actorAndID(c echo.Context) (domain.Actor, uuid.UUID, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		_ = UnauthorizedResponse(c, "Not authenticated")
		return domain.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = BadRequestResponse(c, "Invalid id")
		return domain.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}
