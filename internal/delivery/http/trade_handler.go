package http

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/usecase"
)

// TradeHandler handles trade CRUD under a project
type TradeHandler struct {
	trades *usecase.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(trades *usecase.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// Create logs a trade under a project
// POST /api/projects/:id/trades
func (h *TradeHandler) Create(c echo.Context) error {
	actor, projectID, ok := actorAndID(c)
	if !ok {
		return nil
	}

	in, ok := bindTradeInput(c)
	if !ok {
		return nil
	}

	attachment, err := readUpload(c, "screenshot")
	if err != nil {
		return BadRequestResponse(c, "Failed to read screenshot upload")
	}

	trade, err := h.trades.Create(c.Request().Context(), actor, projectID, in, attachment)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to create trade")
	}
	return CreatedResponse(c, trade)
}

// List returns a project's trades, newest first
// GET /api/projects/:id/trades
func (h *TradeHandler) List(c echo.Context) error {
	actor, projectID, ok := actorAndID(c)
	if !ok {
		return nil
	}

	trades, err := h.trades.List(c.Request().Context(), actor, projectID)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to list trades")
	}
	return SuccessResponse(c, trades)
}

// ListAll returns the actor's trades across every project
// GET /api/trades
func (h *TradeHandler) ListAll(c echo.Context) error {
	actor, err := middleware.GetActor(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	trades, err := h.trades.ListAll(c.Request().Context(), actor)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list trades", err)
	}
	return SuccessResponse(c, trades)
}

// Get returns one trade
// GET /api/trades/:id
func (h *TradeHandler) Get(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	trade, err := h.trades.Get(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to get trade")
	}
	return SuccessResponse(c, trade)
}

// Update resupplies every field of a trade. The stored screenshot is kept
// unless a new file is part of the form.
// PUT /api/trades/:id
func (h *TradeHandler) Update(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	in, ok := bindTradeInput(c)
	if !ok {
		return nil
	}

	attachment, err := readUpload(c, "screenshot")
	if err != nil {
		return BadRequestResponse(c, "Failed to read screenshot upload")
	}

	trade, err := h.trades.Update(c.Request().Context(), actor, id, in, attachment)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to update trade")
	}
	return SuccessMessageResponse(c, "Trade updated", trade)
}

// Delete removes a trade
// DELETE /api/trades/:id
func (h *TradeHandler) Delete(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	if err := h.trades.Delete(c.Request().Context(), actor, id); err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to delete trade")
	}
	return SuccessMessageResponse(c, "Trade deleted", nil)
}

// Screenshot streams the trade's attachment bytes
// GET /api/trades/:id/screenshot
func (h *TradeHandler) Screenshot(c echo.Context) error {
	actor, id, ok := actorAndID(c)
	if !ok {
		return nil
	}

	data, err := h.trades.Screenshot(c.Request().Context(), actor, id)
	if err != nil {
		return DeniedOrErrorResponse(c, err, "Failed to get screenshot")
	}
	return c.Blob(200, "image/png", data)
}

// bindTradeInput reads the trade form fields. rr and date pass through as
// opaque text. When ok is false a 400 has already been written.
func bindTradeInput(c echo.Context) (usecase.TradeInput, bool) {
	in := usecase.TradeInput{
		Date:        c.FormValue("date"),
		Symbol:      c.FormValue("symbol"),
		Direction:   c.FormValue("direction"),
		RR:          c.FormValue("rr"),
		SessionName: c.FormValue("session_name"),
		Result:      c.FormValue("result"),
		Notes:       c.FormValue("notes"),
	}
	if in.Date == "" {
		_ = BadRequestResponse(c, "Trade date is required")
		return in, false
	}

	var err error
	if in.Entry, err = parseFloat(c.FormValue("entry")); err != nil {
		_ = BadRequestResponse(c, "Invalid entry price")
		return in, false
	}
	if in.Exit, err = parseFloat(c.FormValue("exit")); err != nil {
		_ = BadRequestResponse(c, "Invalid exit price")
		return in, false
	}
	if in.LotSize, err = parseFloat(c.FormValue("lot_size")); err != nil {
		_ = BadRequestResponse(c, "Invalid lot size")
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

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// readUpload pulls one optional multipart file. Absent file means nil
// attachment, which the ledger treats as "keep what is stored".
func readUpload(c echo.Context, field string) (*domain.Attachment, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// No file part in the form at all.
		return nil, nil
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*domain.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &domain.Attachment{Filename: fh.Filename, Data: data}, nil
}
