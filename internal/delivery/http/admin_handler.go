package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/domain"
	"tradejournal/internal/service"
)

// AdminHandler handles the admin panel: account management plus read-only
// audit views. All routes sit behind the admin middleware.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers returns all accounts
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list users", err)
	}
	return SuccessResponse(c, users)
}

// ToggleRole flips a user between admin and user
// POST /api/admin/users/:id/toggle-role
func (h *AdminHandler) ToggleRole(c echo.Context) error {
	_, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	user, err := h.admin.ToggleRole(c.Request().Context(), id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to toggle role")
	}
	return SuccessMessageResponse(c, user.Username+" updated to "+user.Role, user)
}

// DeleteUser removes an account; self-deletion is refused
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	if err := h.admin.DeleteUser(c.Request().Context(), actor, id); err != nil {
		if errors.Is(err, domain.ErrSelfDelete) {
			return BadRequestResponse(c, "You can't delete yourself")
		}
		return DeniedOrErrorResponse(c, err, "Failed to delete user")
	}
	return SuccessMessageResponse(c, "User deleted", nil)
}

// UserActivity returns one user's trades and setups for audit
// GET /api/admin/users/:id/activity
func (h *AdminHandler) UserActivity(c echo.Context) error {
	_, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	activity, err := h.admin.GetUserActivity(c.Request().Context(), id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to load user activity")
	}
	return SuccessResponse(c, activity)
}
