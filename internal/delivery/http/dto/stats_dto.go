package dto

import (
	"tradejournal/internal/service"
)

// StatsOutput is the dashboard metrics block as rendered to clients.
// ProfitFactor is a string because its domain includes the "N/A" sentinel.
type StatsOutput struct {
	TotalTrades    int     `json:"total_trades"`
	WinCount       int     `json:"win_count"`
	LossCount      int     `json:"loss_count"`
	BreakEvenCount int     `json:"break_even_count"`
	WinRate        float64 `json:"win_rate"`
	TotalProfit    float64 `json:"total_profit"`
	AvgProfit      float64 `json:"avg_profit"`
	AvgRR          float64 `json:"avg_rr"`
	BestTrade      float64 `json:"best_trade"`
	WorstTrade     float64 `json:"worst_trade"`
	ProfitFactor   string  `json:"profit_factor"`
}

// FromStats converts engine output to the wire shape
func FromStats(s service.Stats) StatsOutput {
	out := StatsOutput{
		TotalTrades:    s.TotalTrades,
		WinCount:       s.WinCount,
		LossCount:      s.LossCount,
		BreakEvenCount: s.BreakEvenCount,
		WinRate:        s.WinRate.InexactFloat64(),
		TotalProfit:    s.TotalProfit.InexactFloat64(),
		AvgProfit:      s.AvgProfit.InexactFloat64(),
		AvgRR:          s.AvgRR.InexactFloat64(),
		BestTrade:      s.BestTrade.InexactFloat64(),
		WorstTrade:     s.WorstTrade.InexactFloat64(),
		ProfitFactor:   "N/A",
	}
	if s.ProfitFactorValid {
		out.ProfitFactor = s.ProfitFactor.String()
	}
	return out
}
