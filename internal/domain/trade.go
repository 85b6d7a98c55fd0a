package domain

import "github.com/google/uuid"

// Trade is one logged market transaction under a project.
//
// Date is stored as zero-padded ISO text (YYYY-MM-DD); listings order by it
// lexicographically, so the storage format is the sorting contract. RR is
// opaque text, syntax-checked only when aggregated. Profit is nullable and
// an absent profit is never treated as zero.
type Trade struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"project_id"`
	Date          string    `json:"date"`
	Symbol        string    `json:"symbol"`
	Direction     string    `json:"direction"`
	Entry         float64   `json:"entry"`
	Exit          float64   `json:"exit"`
	LotSize       float64   `json:"lot_size"`
	RR            string    `json:"rr"`
	SessionName   string    `json:"session_name"`
	Result        string    `json:"result"`
	Profit        *float64  `json:"profit,omitempty"`
	Notes         string    `json:"notes"`
	HasScreenshot bool      `json:"has_screenshot"`
}

// Trade result constants
const (
	ResultWin       = "win"
	ResultLoss      = "loss"
	ResultBreakEven = "break-even"
)

// TradeWithProject carries the owning project's name alongside the trade,
// for listings that span projects (admin activity, all-trades views).
type TradeWithProject struct {
	Trade
	ProjectName string `json:"project_name"`
}

// Attachment is an opaque screenshot payload handed in by the upload layer.
// The core never inspects the bytes.
type Attachment struct {
	Filename string
	Data     []byte
}
