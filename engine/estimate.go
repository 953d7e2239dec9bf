package engine

import "github.com/shopspring/decimal"

// =============================================================================
// LABOR COST ESTIMATE - Informational only, not billing
// =============================================================================

// LaborEstimate is the projected staffing cost for a roster. It is an
// estimate shown on the dashboard; invoicing lives in another system.
type LaborEstimate struct {
	Lines []EstimateLine
	Total decimal.Decimal
}

// EstimateLine is one position's contribution to the estimate.
type EstimateLine struct {
	Position   Position
	Count      int
	HourlyRate decimal.Decimal
	Cost       decimal.Decimal
}

// EstimateLaborCost prices a position list against a rate card for a shift
// of the given length. Positions without a rate estimate at zero and still
// appear as lines so the gap is visible.
func EstimateLaborCost(positions []EventPosition, rates RateCard, shiftHours decimal.Decimal) LaborEstimate {
	est := LaborEstimate{Total: decimal.Zero}
	for _, p := range positions {
		rate := rates[p.Position] // zero value is decimal.Zero
		cost := rate.Mul(decimal.NewFromInt(int64(p.RequiredCount))).Mul(shiftHours)
		est.Lines = append(est.Lines, EstimateLine{
			Position:   p.Position,
			Count:      p.RequiredCount,
			HourlyRate: rate,
			Cost:       cost,
		})
		est.Total = est.Total.Add(cost)
	}
	return est
}
