package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradejournal/internal/domain"
)

// Stats holds the dashboard metrics computed from one trade collection.
// ProfitFactorValid is false when the loss sum is exactly zero (including
// when there are no losses at all); callers render that as "N/A".
type Stats struct {
	TotalTrades    int
	WinCount       int
	LossCount      int
	BreakEvenCount int

	WinRate     decimal.Decimal
	TotalProfit decimal.Decimal
	AvgProfit   decimal.Decimal
	AvgRR       decimal.Decimal
	BestTrade   decimal.Decimal
	WorstTrade  decimal.Decimal

	ProfitFactor      decimal.Decimal
	ProfitFactorValid bool
}

var hundred = decimal.NewFromInt(100)

// ComputeStats derives dashboard metrics from an already ownership-filtered
// trade collection. Pure function: no I/O, no stored state, recomputed on
// every request.
//
// Numeric policy, reproduced exactly:
//   - absent profit is excluded from sums, never treated as zero
//   - avg_rr sums only rr strings containing exactly one '.' that parse as
//     decimals, but divides by the unfiltered trade count, so a trade with
//     unusable rr still dilutes the average
//   - profit_factor is not applicable whenever the loss sum is exactly zero
//   - rounding is banker's to 2 decimals
func ComputeStats(trades []*domain.Trade) Stats {
	stats := Stats{TotalTrades: len(trades)}

	var (
		total     decimal.Decimal
		winSum    decimal.Decimal
		lossSum   decimal.Decimal
		rrSum     decimal.Decimal
		best      decimal.Decimal
		worst     decimal.Decimal
		hasProfit bool
	)

	for _, t := range trades {
		switch t.Result {
		case domain.ResultWin:
			stats.WinCount++
		case domain.ResultLoss:
			stats.LossCount++
		case domain.ResultBreakEven:
			stats.BreakEvenCount++
		}

		if t.Profit != nil {
			p := decimal.NewFromFloat(*t.Profit)
			total = total.Add(p)
			if !hasProfit || p.GreaterThan(best) {
				best = p
			}
			if !hasProfit || p.LessThan(worst) {
				worst = p
			}
			hasProfit = true

			switch t.Result {
			case domain.ResultWin:
				winSum = winSum.Add(p)
			case domain.ResultLoss:
				lossSum = lossSum.Add(p)
			}
		}

		if rr, ok := usableRR(t.RR); ok {
			rrSum = rrSum.Add(rr)
		}
	}

	stats.TotalProfit = total
	stats.BestTrade = best
	stats.WorstTrade = worst

	if stats.TotalTrades > 0 {
		n := decimal.NewFromInt(int64(stats.TotalTrades))
		stats.WinRate = decimal.NewFromInt(int64(stats.WinCount)).Mul(hundred).Div(n).RoundBank(2)
		stats.AvgProfit = total.Div(n).RoundBank(2)
		stats.AvgRR = rrSum.Div(n).RoundBank(2)
	}

	if !lossSum.IsZero() {
		stats.ProfitFactor = winSum.Div(lossSum.Abs()).RoundBank(2)
		stats.ProfitFactorValid = true
	}

	return stats
}

// usableRR parses a free-text rr value. Only strings containing exactly one
// '.' character are considered; anything that still fails to parse is
// excluded the same way.
func usableRR(rr string) (decimal.Decimal, bool) {
	if rr == "" || strings.Count(rr, ".") != 1 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(rr)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
