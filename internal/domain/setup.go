package domain

import "github.com/google/uuid"

// BacktestSetup is a backtested trading idea owned directly by a user,
// independent of live projects.
type BacktestSetup struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	Title         string    `json:"title"`
	EntryNotes    string    `json:"entry_notes"`
	Result        string    `json:"result"`
	ReviewNotes   string    `json:"review_notes"`
	SessionName   string    `json:"session_name"`
	Timeframe     string    `json:"timeframe"`
	Market        string    `json:"market"`
	EntryCriteria string    `json:"entry_criteria"`
	ExitCriteria  string    `json:"exit_criteria"`
	RMultiple     string    `json:"r_multiple"`
	Profit        *float64  `json:"profit,omitempty"`

	// ScreenshotIDs holds the ids of attached images. Bytes are fetched
	// individually, never batch-loaded, since payloads may be large.
	ScreenshotIDs []uuid.UUID `json:"screenshot_ids,omitempty"`
}

// Screenshot is image metadata for a backtest setup attachment. Screenshots
// are created only as part of setup creation and share its lifetime.
type Screenshot struct {
	ID       uuid.UUID `json:"id"`
	SetupID  uuid.UUID `json:"setup_id"`
	Filename string    `json:"filename"`
}
