package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickline/condo-engine/finance"
	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func soldUnit(number string, t inventory.UnitType, area float64) inventory.Unit {
	return inventory.Unit{
		UnitNumber: number,
		ProjectID:  "proj-1",
		Area:       area,
		Type:       t,
		Status:     inventory.StatusSold,
	}
}

func availableUnit(number string, t inventory.UnitType, area float64) inventory.Unit {
	u := soldUnit(number, t, area)
	u.Status = inventory.StatusAvailable
	return u
}

// =============================================================================
// PER-METHOD CALCULATIONS
// =============================================================================

func TestStandard_ResidentialScenario(t *testing.T) {
	// GIVEN: One sold residential unit with area 850
	// THEN: standard = 212.50, flat_rate = 250.00, progressive = 212.50

	units := []inventory.Unit{soldUnit("A-101", inventory.TypeResidential, 850)}

	standard := finance.CalculateMonthlyFees(units, finance.MethodStandard)
	require.Len(t, standard, 1)
	assert.True(t, standard[0].MonthlyAmount.Equal(d("212.50")),
		"standard amount was %s", standard[0].MonthlyAmount)

	flat := finance.CalculateMonthlyFees(units, finance.MethodFlatRate)
	require.Len(t, flat, 1)
	assert.True(t, flat[0].MonthlyAmount.Equal(d("250.00")),
		"flat amount was %s", flat[0].MonthlyAmount)

	progressive := finance.CalculateMonthlyFees(units, finance.MethodProgressive)
	require.Len(t, progressive, 1)
	assert.True(t, progressive[0].MonthlyAmount.Equal(d("212.50")),
		"progressive amount was %s", progressive[0].MonthlyAmount)
	assert.Equal(t, "0.25", progressive[0].Details["rate"], "area 850 sits in the <=1000 tier")
}

func TestStandard_RatesPerType(t *testing.T) {
	cases := []struct {
		unitType inventory.UnitType
		area     float64
		want     string
	}{
		{inventory.TypeResidential, 1000, "250.00"},
		{inventory.TypeCommercial, 1000, "350.00"},
		{inventory.TypeParking, 1000, "100.00"},
		{inventory.TypeStorage, 1000, "150.00"},
	}
	for _, tc := range cases {
		records := finance.CalculateMonthlyFees(
			[]inventory.Unit{soldUnit("A-101", tc.unitType, tc.area)}, finance.MethodStandard)
		require.Len(t, records, 1)
		assert.True(t, records[0].MonthlyAmount.Equal(d(tc.want)),
			"%s: got %s, want %s", tc.unitType, records[0].MonthlyAmount, tc.want)
	}
}

func TestProgressive_TierBoundaries(t *testing.T) {
	// GIVEN: Areas sitting exactly on and just above a tier boundary
	// THEN: Boundary values belong to the lower tier (<=, not <)

	atBoundary := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-101", inventory.TypeResidential, 500)}, finance.MethodProgressive)
	require.Len(t, atBoundary, 1)
	assert.Equal(t, "0.2", atBoundary[0].Details["rate"])
	assert.True(t, atBoundary[0].MonthlyAmount.Equal(d("100.00")))

	aboveBoundary := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-101", inventory.TypeResidential, 500.01)}, finance.MethodProgressive)
	require.Len(t, aboveBoundary, 1)
	assert.Equal(t, "0.25", aboveBoundary[0].Details["rate"])

	top := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-101", inventory.TypeResidential, 1501)}, finance.MethodProgressive)
	require.Len(t, top, 1)
	assert.Equal(t, "0.35", top[0].Details["rate"])
}

func TestCustom_ComplexityFactors(t *testing.T) {
	// GIVEN: Commercial, oversized residential, and ordinary residential units
	// THEN: custom = standard * 1.2 / 1.1 / 1.0 respectively

	commercial := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-101", inventory.TypeCommercial, 1000)}, finance.MethodCustom)
	require.Len(t, commercial, 1)
	assert.True(t, commercial[0].MonthlyAmount.Equal(d("420.00")), // 350 * 1.2
		"commercial custom was %s", commercial[0].MonthlyAmount)
	assert.Equal(t, "1.2", commercial[0].Details["complexity_factor"])

	oversized := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-102", inventory.TypeResidential, 1600)}, finance.MethodCustom)
	require.Len(t, oversized, 1)
	assert.True(t, oversized[0].MonthlyAmount.Equal(d("440.00")), // 400 * 1.1
		"oversized custom was %s", oversized[0].MonthlyAmount)

	ordinary := finance.CalculateMonthlyFees(
		[]inventory.Unit{soldUnit("A-103", inventory.TypeResidential, 850)}, finance.MethodCustom)
	require.Len(t, ordinary, 1)
	assert.True(t, ordinary[0].MonthlyAmount.Equal(d("212.50")),
		"ordinary custom was %s", ordinary[0].MonthlyAmount)
}

func TestUnknownTypeAndMethod_FallBackToDefaults(t *testing.T) {
	// GIVEN: A unit type and method outside the declared sets
	// THEN: The documented defaults apply silently, visible only in details

	odd := soldUnit("A-101", inventory.UnitType("penthouse"), 1000)

	records := finance.CalculateMonthlyFees([]inventory.Unit{odd}, finance.Method("quarterly"))
	require.Len(t, records, 1)
	assert.True(t, records[0].MonthlyAmount.Equal(d("250.00")), "default rate 0.25 applies")
	assert.Equal(t, "standard", records[0].Details["method"])
	assert.Equal(t, "0.25", records[0].Details["rate"])

	flat := finance.CalculateMonthlyFees([]inventory.Unit{odd}, finance.MethodFlatRate)
	require.Len(t, flat, 1)
	assert.True(t, flat[0].MonthlyAmount.Equal(d("200.00")), "default flat amount applies")
}

// =============================================================================
// PIPELINE BEHAVIOR
// =============================================================================

func TestCalculateMonthlyFees_FiltersToSoldUnits(t *testing.T) {
	units := []inventory.Unit{
		soldUnit("A-101", inventory.TypeResidential, 800),
		availableUnit("A-102", inventory.TypeResidential, 800),
		{UnitNumber: "A-103", Area: 800, Type: inventory.TypeResidential, Status: inventory.StatusReserved},
		{UnitNumber: "A-104", Area: 800, Type: inventory.TypeResidential, Status: inventory.StatusMaintenance},
	}

	records := finance.CalculateMonthlyFees(units, finance.MethodStandard)

	require.Len(t, records, 1)
	assert.Equal(t, "A-101", records[0].UnitNumber)
}

func TestCalculateMonthlyFees_DeterministicSortedOutput(t *testing.T) {
	// GIVEN: The same snapshot in scrambled input order
	// THEN: Both runs yield identical sequences sorted by unit number

	units := []inventory.Unit{
		soldUnit("A-301", inventory.TypeCommercial, 900),
		soldUnit("A-101", inventory.TypeResidential, 500),
		soldUnit("A-201", inventory.TypeParking, 300),
	}
	scrambled := []inventory.Unit{units[2], units[0], units[1]}

	first := finance.CalculateMonthlyFees(units, finance.MethodStandard)
	second := finance.CalculateMonthlyFees(scrambled, finance.MethodStandard)

	require.Len(t, first, 3)
	assert.Equal(t, "A-101", first[0].UnitNumber)
	assert.Equal(t, "A-201", first[1].UnitNumber)
	assert.Equal(t, "A-301", first[2].UnitNumber)
	assert.Equal(t, first, second)
}

func TestTotalIncome_ConsistencyWithPerUnitRates(t *testing.T) {
	// GIVEN: A mixed snapshot
	// THEN: Total income equals the sum of area*rate over sold units

	units := []inventory.Unit{
		soldUnit("A-101", inventory.TypeResidential, 850), // 212.50
		soldUnit("A-102", inventory.TypeCommercial, 1200), // 420.00
		soldUnit("A-103", inventory.TypeParking, 250),     // 25.00
		soldUnit("A-104", inventory.TypeStorage, 200),     // 30.00
		availableUnit("A-105", inventory.TypeResidential, 850),
	}

	total := finance.TotalIncome(finance.CalculateMonthlyFees(units, finance.MethodStandard))

	assert.True(t, total.Equal(d("687.50")), "total was %s", total)
}

func TestTotalIncome_EmptyStartsAtZero(t *testing.T) {
	assert.True(t, finance.TotalIncome(nil).Equal(d("0.00")))
}

func TestFilterByAmountRange_Inclusive(t *testing.T) {
	units := []inventory.Unit{
		soldUnit("A-101", inventory.TypeResidential, 400),  // 100.00
		soldUnit("A-102", inventory.TypeResidential, 800),  // 200.00
		soldUnit("A-103", inventory.TypeResidential, 1200), // 300.00
	}
	records := finance.CalculateMonthlyFees(units, finance.MethodStandard)

	filtered := finance.FilterByAmountRange(records, d("100.00"), d("200.00"))

	require.Len(t, filtered, 2, "both boundary amounts are included")
	assert.Equal(t, "A-101", filtered[0].UnitNumber)
	assert.Equal(t, "A-102", filtered[1].UnitNumber)
}

func TestGroupByType(t *testing.T) {
	units := []inventory.Unit{
		soldUnit("A-101", inventory.TypeResidential, 800),
		soldUnit("A-102", inventory.TypeCommercial, 900),
		availableUnit("A-103", inventory.TypeResidential, 700),
	}

	grouped := finance.GroupByType(units)

	require.Len(t, grouped, 2)
	assert.Len(t, grouped[inventory.TypeResidential], 2)
	assert.Len(t, grouped[inventory.TypeCommercial], 1)
	assert.Equal(t, "A-102", grouped[inventory.TypeCommercial][0].UnitNumber)
}

// =============================================================================
// SUMMARY AND DERIVED REPORTS
// =============================================================================

func TestSummarize(t *testing.T) {
	units := []inventory.Unit{
		soldUnit("A-101", inventory.TypeResidential, 850), // 212.50
		soldUnit("A-102", inventory.TypeCommercial, 1000), // 350.00
		availableUnit("A-103", inventory.TypeResidential, 600),
	}

	summary := finance.Summarize(units, finance.MethodStandard)

	assert.True(t, summary.TotalMonthlyIncome.Equal(d("562.50")),
		"total was %s", summary.TotalMonthlyIncome)
	assert.True(t, summary.AverageFeesPerUnit.Equal(d("281.25")),
		"average was %s", summary.AverageFeesPerUnit)
	assert.Equal(t, 3, summary.TotalUnits)
	assert.Equal(t, 2, summary.ActiveUnits)

	require.Len(t, summary.BreakdownByType, 4, "every declared type appears")
	assert.True(t, summary.BreakdownByType[inventory.TypeResidential].Equal(d("212.50")))
	assert.True(t, summary.BreakdownByType[inventory.TypeCommercial].Equal(d("350.00")))
	assert.True(t, summary.BreakdownByType[inventory.TypeParking].Equal(d("0.00")))
	assert.True(t, summary.BreakdownByType[inventory.TypeStorage].Equal(d("0.00")))
}

func TestSummarize_EmptySnapshot(t *testing.T) {
	// GIVEN: No units at all
	// THEN: Zero totals and a guarded average, not a division panic

	summary := finance.Summarize(nil, finance.MethodStandard)

	assert.True(t, summary.TotalMonthlyIncome.Equal(d("0.00")))
	assert.True(t, summary.AverageFeesPerUnit.Equal(d("0.00")))
	assert.Equal(t, 0, summary.TotalUnits)
	assert.Equal(t, 0, summary.ActiveUnits)
}

func TestAnnualIncome(t *testing.T) {
	units := []inventory.Unit{soldUnit("A-101", inventory.TypeResidential, 850)} // 212.50/month

	assert.True(t, finance.AnnualIncome(units).Equal(d("2550.00")),
		"annual income was %s", finance.AnnualIncome(units))
}

func TestDebtToIncomeRatio(t *testing.T) {
	assert.True(t, finance.DebtToIncomeRatio(d("1000"), d("4000")).Equal(d("25.00")))
	assert.True(t, finance.DebtToIncomeRatio(d("1000"), d("0")).Equal(d("0.00")),
		"zero income yields 0.00, not an error")
}

// =============================================================================
// UNIT CONVENIENCE FEE
// =============================================================================

func TestUnitMonthlyFee_DefaultAndOverride(t *testing.T) {
	plain := inventory.Unit{Area: 1000, Type: inventory.TypeResidential}
	assert.True(t, plain.MonthlyFee().Equal(d("450.00")), "default is area * 0.45")

	override := plain
	override.MonthlyFeesBase = decimal.NullDecimal{Decimal: d("399.99"), Valid: true}
	assert.True(t, override.MonthlyFee().Equal(d("399.99")), "explicit base wins")
}
