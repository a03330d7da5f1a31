package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"tripzy/internal/models/trip_models"
)

const (
	BudgetMin     = 10_000
	BudgetMax     = 500_000
	BudgetStep    = 5_000
	BudgetDefault = 50_000
)

// DefaultBudgetBreakdown is the 40/30/20/10 split a fresh profile starts with.
var DefaultBudgetBreakdown = trip_models.BudgetBreakdown{
	Accommodation: 40,
	Transport:     30,
	Food:          20,
	Activities:    10,
}

// DeriveAmounts splits total by the breakdown percentages, rounding half up.
// Callers recompute it on every read; the result is never stored in the profile.
func DeriveAmounts(total int, breakdown trip_models.BudgetBreakdown) trip_models.BudgetAmounts {
	return trip_models.BudgetAmounts{
		Accommodation: shareOf(total, breakdown.Accommodation),
		Transport:     shareOf(total, breakdown.Transport),
		Food:          shareOf(total, breakdown.Food),
		Activities:    shareOf(total, breakdown.Activities),
	}
}

func shareOf(total, percent int) int {
	return (total*percent + 50) / 100
}

// ApplyPercentageEdit sets category to newValue (clamped to 0..100) and accepts the
// result only when the four percentages still sum to at most 100. A rejected edit
// returns the original breakdown and false.
func ApplyPercentageEdit(breakdown trip_models.BudgetBreakdown, category trip_models.BudgetCategory, newValue int) (trip_models.BudgetBreakdown, bool) {
	if !category.Valid() {
		return breakdown, false
	}
	candidate := breakdown.With(category, clamp(newValue, 0, 100))
	if candidate.Sum() > 100 {
		return breakdown, false
	}
	return candidate, true
}

// NormalizeBudgetTotal clamps total into [BudgetMin, BudgetMax] and snaps it to the
// nearest BudgetStep.
func NormalizeBudgetTotal(total int) int {
	total = clamp(total, BudgetMin, BudgetMax)
	snapped := (total + BudgetStep/2) / BudgetStep * BudgetStep
	return clamp(snapped, BudgetMin, BudgetMax)
}

// ParseBudgetTotal reads a typed budget. Anything unparsable counts as BudgetMin.
// Digit strings too long for an int count as out of range, not unparsable.
func ParseBudgetTotal(raw string) int {
	n, ok := parseTypedInt(raw)
	if !ok {
		return BudgetMin
	}
	return NormalizeBudgetTotal(n)
}

// parseTypedInt reads an integer typed into a number input. Values beyond the int32
// range saturate at its bounds so callers can clamp them like any other input.
func parseTypedInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return clamp(n, math.MinInt32, math.MaxInt32), true
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(raw, "-") {
			return math.MinInt32, true
		}
		return math.MaxInt32, true
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
