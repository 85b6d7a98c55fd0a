package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/usecase"
)

// SetupHandler handles backtest setups and their screenshots
type SetupHandler struct {
	setups *usecase.SetupService
}

// NewSetupHandler creates a new SetupHandler
func NewSetupHandler(setups *usecase.SetupService) *SetupHandler {
	return &SetupHandler{setups: setups}
}

// Create inserts a setup and all uploaded screenshots atomically
// POST /api/setups
func (h *SetupHandler) Create(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	in, ok := bindSetupInput(c)
	if !ok {
		return nil
	}

	attachments, err := readUploads(c, "screenshots")
	if err != nil {
		return BadRequestResponse(c, "Failed to read screenshot uploads")
	}

	setup, err := h.setups.Create(c.Request().Context(), actor, in, attachments)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create setup", err)
	}
	return CreatedResponse(c, setup)
}

// List returns the actor's setups, newest first
// GET /api/setups
func (h *SetupHandler) List(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	setups, err := h.setups.List(c.Request().Context(), actor)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list setups", err)
	}
	return SuccessResponse(c, setups)
}

// Get returns one setup with its screenshot ids
// GET /api/setups/:id
func (h *SetupHandler) Get(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	setup, err := h.setups.Get(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to get setup")
	}
	return SuccessResponse(c, setup)
}

// Update resupplies every setup field
// PUT /api/setups/:id
func (h *SetupHandler) Update(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	in, ok := bindSetupInput(c)
	if !ok {
		return nil
	}

	setup, err := h.setups.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to update setup")
	}
	return SuccessMessageResponse(c, "Setup updated", setup)
}

// Delete removes a setup and its screenshots
// DELETE /api/setups/:id
func (h *SetupHandler) Delete(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	if err := h.setups.Delete(c.Request().Context(), actor, id); err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to delete setup")
	}
	return SuccessMessageResponse(c, "Setup deleted", nil)
}

// Screenshot streams one setup image by id
// GET /api/setups/screenshots/:id
func (h *SetupHandler) Screenshot(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	data, _, err := h.setups.Screenshot(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to get screenshot")
	}
	return c.Blob(200, "image/png", data)
}

// bindSetupInput reads the setup form fields. When ok is false a 400 has
// already been written.
func bindSetupInput(c echo.Context) (usecase.SetupInput, bool) {
	in := usecase.SetupInput{
		Date:          c.FormValue("date"),
		Title:         c.FormValue("title"),
		EntryNotes:    c.FormValue("entry_notes"),
		Result:        c.FormValue("result"),
		ReviewNotes:   c.FormValue("review_notes"),
		SessionName:   c.FormValue("session_name"),
		Timeframe:     c.FormValue("timeframe"),
		Market:        c.FormValue("market"),
		EntryCriteria: c.FormValue("entry_criteria"),
		ExitCriteria:  c.FormValue("exit_criteria"),
		RMultiple:     c.FormValue("r_multiple"),
	}
	if in.Title == "" {
		_ = BadRequestResponse(c, "Setup title is required")
		return in, false
	}

	if raw := c.FormValue("profit"); raw != "" {
		profit, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			_ = BadRequestResponse(c, "Invalid profit")
			return in, false
		}
		in.Profit = &profit
	}
	return in, true
}

// readUploads pulls every file under one multipart field name. Empty parts
// are skipped, matching the upload form's optional slots.
func readUploads(c echo.Context, field string) ([]domain.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; no attachments.
		return nil, nil
	}

	var attachments []domain.Attachment
	for _, fh := range form.File[field] {
		if fh.Size == 0 || fh.Filename == "" {
			continue
		}
		a, err := openUpload(fh)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *a)
	}
	return attachments, nil
}
