/*
Package finance provides the fee-calculation engine for the condo engine.

PURPOSE:

	A pure-functional layer that consumes a collection of inventory.Unit
	and a selected calculation method, producing immutable FinancialRecords
	and FinancialSummaries. Nothing in this package mutates its inputs,
	performs I/O, or depends on anything but the unit snapshot it is given.

KEY CONCEPTS IN THIS FILE (types.go):
  - Method: Closed set of fee strategies (standard, progressive,
    flat_rate, custom)
  - FinancialRecord: One unit's computed monthly fee plus every input
    used to derive it
  - FinancialSummary: Aggregate report over a unit collection

DESIGN PRINCIPLES:
 1. Purity: same snapshot in, bit-identical records out
 2. Precision: all amounts are decimal.Decimal
 3. Availability over strictness: unrecognized methods and unit types
    resolve to documented defaults, observable only through the
    calculation details

SEE ALSO:
  - engine.go: The calculation pipeline
*/
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// CALCULATION METHOD
// =============================================================================

type Method string

const (
	MethodStandard    Method = "standard"
	MethodProgressive Method = "progressive"
	MethodFlatRate    Method = "flat_rate"
	MethodCustom      Method = "custom"
)

// Methods returns every declared calculation method.
func Methods() []Method {
	return []Method{MethodStandard, MethodProgressive, MethodFlatRate, MethodCustom}
}

// IsValid reports whether m is one of the declared methods.
func (m Method) IsValid() bool {
	switch m {
	case MethodStandard, MethodProgressive, MethodFlatRate, MethodCustom:
		return true
	}
	return false
}

// ParseMethod resolves a method name, falling back to MethodStandard for
// anything unrecognized. The fallback is deliberate: reports should render
// with defaults rather than fail on a stale or mistyped method name.
func ParseMethod(s string) Method {
	m := Method(s)
	if !m.IsValid() {
		return MethodStandard
	}
	return m
}

// =============================================================================
// FINANCIAL RECORD - Per-unit computed fee (immutable)
// =============================================================================

// FinancialRecord captures one fee-generating unit's monthly amount and
// the named inputs used to compute it. Details exists for auditability:
// every rate, tier, and factor that influenced the amount appears there.
type FinancialRecord struct {
	UnitNumber    string
	MonthlyAmount decimal.Decimal
	Details       map[string]string
	UnitType      inventory.UnitType
	Area          float64
}

// =============================================================================
// FINANCIAL SUMMARY - Aggregate report (immutable)
// =============================================================================

// FinancialSummary is derived on demand from a unit snapshot and never
// persisted by this package.
type FinancialSummary struct {
	TotalMonthlyIncome decimal.Decimal
	AverageFeesPerUnit decimal.Decimal
	TotalUnits         int
	ActiveUnits        int
	BreakdownByType    map[inventory.UnitType]decimal.Decimal
}
