/*
engine.go - Pure fee-calculation pipeline

PURPOSE:

	Computes recurring monthly fees per unit and aggregates them into
	reports. The pipeline is: filter fee-generating (sold) units, map each
	through the selected method's calculation, sort by unit number for a
	deterministic output order, then fold into totals and summaries.

METHODS:

	standard:    area * per-type rate
	progressive: area * tier rate (tiers by area, boundaries inclusive in
	             the lower tier)
	flat_rate:   fixed amount per type, area ignored
	custom:      standard * complexity factor (commercial or oversized
	             units pay more)

FAILURE SEMANTICS:

	No function here errors for business-data reasons. Unrecognized unit
	types and methods resolve to documented defaults; the resolution is
	visible in each record's Details map. Division by zero in averages and
	ratios yields 0.00, not an error.

CONCURRENCY:

	All functions are pure and safe to call concurrently over the same
	unmutated unit snapshot.
*/
package finance

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// RATE TABLES
// =============================================================================

var standardRates = map[inventory.UnitType]decimal.Decimal{
	inventory.TypeResidential: decimal.NewFromFloat(0.25),
	inventory.TypeCommercial:  decimal.NewFromFloat(0.35),
	inventory.TypeParking:     decimal.NewFromFloat(0.10),
	inventory.TypeStorage:     decimal.NewFromFloat(0.15),
}

var defaultStandardRate = decimal.NewFromFloat(0.25)

// progressiveTiers maps an area ceiling to its rate. Boundary areas
// belong to the lower tier (<=, not <).
var progressiveTiers = []struct {
	MaxArea float64
	Rate    decimal.Decimal
}{
	{500, decimal.NewFromFloat(0.20)},
	{1000, decimal.NewFromFloat(0.25)},
	{1500, decimal.NewFromFloat(0.30)},
}

var progressiveTopRate = decimal.NewFromFloat(0.35)

var flatRates = map[inventory.UnitType]decimal.Decimal{
	inventory.TypeResidential: decimal.NewFromFloat(250.00),
	inventory.TypeCommercial:  decimal.NewFromFloat(500.00),
	inventory.TypeParking:     decimal.NewFromFloat(50.00),
	inventory.TypeStorage:     decimal.NewFromFloat(75.00),
}

var defaultFlatRate = decimal.NewFromFloat(200.00)

var (
	commercialFactor = decimal.NewFromFloat(1.2)
	oversizeFactor   = decimal.NewFromFloat(1.1)
	neutralFactor    = decimal.NewFromFloat(1.0)
)

// oversizeThreshold is the area above which the custom method applies the
// oversize complexity factor.
const oversizeThreshold = 1500.0

// =============================================================================
// FEE PIPELINE
// =============================================================================

// CalculateMonthlyFees computes one FinancialRecord per fee-generating
// (sold) unit, sorted by unit number ascending so the output order is
// deterministic regardless of input order.
func CalculateMonthlyFees(units []inventory.Unit, method Method) []FinancialRecord {
	records := make([]FinancialRecord, 0, len(units))
	for _, u := range units {
		if u.Status != inventory.StatusSold {
			continue
		}
		amount, details := calculate(u, method)
		records = append(records, FinancialRecord{
			UnitNumber:    u.UnitNumber,
			MonthlyAmount: amount,
			Details:       details,
			UnitType:      u.Type,
			Area:          u.Area,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UnitNumber < records[j].UnitNumber
	})
	return records
}

// calculate dispatches to the method's pure calculation. Unknown methods
// resolve to standard; the resolved method is recorded in the details.
func calculate(u inventory.Unit, method Method) (decimal.Decimal, map[string]string) {
	switch method {
	case MethodProgressive:
		return progressiveFee(u)
	case MethodFlatRate:
		return flatFee(u)
	case MethodCustom:
		return customFee(u)
	case MethodStandard:
		return standardFee(u)
	default:
		return standardFee(u)
	}
}

// standardFee is area * per-type rate. Types outside the declared set use
// the residential rate.
func standardFee(u inventory.Unit) (decimal.Decimal, map[string]string) {
	rate, ok := standardRates[u.Type]
	if !ok {
		rate = defaultStandardRate
	}
	amount := decimal.NewFromFloat(u.Area).Mul(rate).Round(2)
	return amount, map[string]string{
		"method":    string(MethodStandard),
		"unit_type": string(u.Type),
		"area":      formatArea(u.Area),
		"rate":      rate.String(),
	}
}

// progressiveFee applies a tiered rate keyed on area. A unit sitting
// exactly on a tier boundary pays the lower tier's rate.
func progressiveFee(u inventory.Unit) (decimal.Decimal, map[string]string) {
	rate := progressiveTopRate
	for _, tier := range progressiveTiers {
		if u.Area <= tier.MaxArea {
			rate = tier.Rate
			break
		}
	}
	amount := decimal.NewFromFloat(u.Area).Mul(rate).Round(2)
	return amount, map[string]string{
		"method":    string(MethodProgressive),
		"unit_type": string(u.Type),
		"area":      formatArea(u.Area),
		"rate":      rate.String(),
	}
}

// flatFee ignores area entirely: a fixed amount per type, with a default
// for anything outside the declared set.
func flatFee(u inventory.Unit) (decimal.Decimal, map[string]string) {
	amount, ok := flatRates[u.Type]
	if !ok {
		amount = defaultFlatRate
	}
	return amount, map[string]string{
		"method":    string(MethodFlatRate),
		"unit_type": string(u.Type),
		"amount":    amount.StringFixed(2),
	}
}

// customFee composes on top of standard: commercial units pay a 1.2
// complexity factor, oversized units 1.1, everything else 1.0.
func customFee(u inventory.Unit) (decimal.Decimal, map[string]string) {
	base, details := standardFee(u)

	factor := neutralFactor
	switch {
	case u.Type == inventory.TypeCommercial:
		factor = commercialFactor
	case u.Area > oversizeThreshold:
		factor = oversizeFactor
	}

	details["method"] = string(MethodCustom)
	details["base_amount"] = base.StringFixed(2)
	details["complexity_factor"] = factor.String()
	return base.Mul(factor).Round(2), details
}

// =============================================================================
// FOLDS OVER UNITS AND RECORDS
// =============================================================================

// GroupByType groups units by their unit type via a left fold. Each fold
// step produces a fresh map and slice; no intermediate accumulator is
// mutated in place, so partial results can be shared safely.
func GroupByType(units []inventory.Unit) map[inventory.UnitType][]inventory.Unit {
	grouped := make(map[inventory.UnitType][]inventory.Unit)
	for _, u := range units {
		grouped = foldUnit(grouped, u)
	}
	return grouped
}

func foldUnit(acc map[inventory.UnitType][]inventory.Unit, u inventory.Unit) map[inventory.UnitType][]inventory.Unit {
	next := make(map[inventory.UnitType][]inventory.Unit, len(acc)+1)
	for k, v := range acc {
		next[k] = v
	}
	group := make([]inventory.Unit, 0, len(acc[u.Type])+1)
	group = append(group, acc[u.Type]...)
	next[u.Type] = append(group, u)
	return next
}

// TotalIncome fold-sums monthly amounts over records, starting at 0.00.
func TotalIncome(records []FinancialRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.MonthlyAmount)
	}
	return total
}

// FilterByAmountRange keeps records with min <= amount <= max, inclusive
// on both ends.
func FilterByAmountRange(records []FinancialRecord, min, max decimal.Decimal) []FinancialRecord {
	filtered := make([]FinancialRecord, 0, len(records))
	for _, r := range records {
		if r.MonthlyAmount.GreaterThanOrEqual(min) && r.MonthlyAmount.LessThanOrEqual(max) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// =============================================================================
// SUMMARY AND DERIVED REPORTS
// =============================================================================

// Summarize builds the aggregate financial report for a unit snapshot.
// The per-type breakdown recomputes the fee pipeline restricted to each
// declared type; O(types * units) is fine at the project scale this
// system targets.
func Summarize(units []inventory.Unit, method Method) FinancialSummary {
	records := CalculateMonthlyFees(units, method)
	total := TotalIncome(records)

	active := 0
	for _, u := range units {
		if u.Status == inventory.StatusSold {
			active++
		}
	}

	average := decimal.Zero
	if active > 0 {
		average = total.Div(decimal.NewFromInt(int64(active))).Round(2)
	}

	breakdown := make(map[inventory.UnitType]decimal.Decimal, len(inventory.UnitTypes()))
	for _, t := range inventory.UnitTypes() {
		subset := make([]inventory.Unit, 0, len(units))
		for _, u := range units {
			if u.Type == t {
				subset = append(subset, u)
			}
		}
		breakdown[t] = TotalIncome(CalculateMonthlyFees(subset, method))
	}

	return FinancialSummary{
		TotalMonthlyIncome: total,
		AverageFeesPerUnit: average,
		TotalUnits:         len(units),
		ActiveUnits:        active,
		BreakdownByType:    breakdown,
	}
}

// AnnualIncome projects a year of income from the standard method.
func AnnualIncome(units []inventory.Unit) decimal.Decimal {
	monthly := TotalIncome(CalculateMonthlyFees(units, MethodStandard))
	return monthly.Mul(decimal.NewFromInt(12))
}

// DebtToIncomeRatio returns (debt/income)*100 as a percentage, or 0.00
// when income is zero. The zero guard is a report convention, not an
// error condition.
func DebtToIncomeRatio(debt, income decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return debt.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
}

func formatArea(area float64) string {
	return strconv.FormatFloat(area, 'f', -1, 64)
}
