/*
Package inventory provides the unit inventory core for the condo engine.

PURPOSE:

	This package contains the value types and the allocation algorithm for a
	project's sellable units. A Project owns an ordered collection of Units;
	the Allocator produces new batches of units with weighted type selection
	and constrained area/price variation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Unit: One sellable/leasable subdivision of a project
  - Project: A development with a target unit count and aggregate area
  - UnitType/UnitStatus: Closed enumerations over the unit taxonomy

DESIGN PRINCIPLES:
 1. Explicit ownership: the allocator returns batches, the Project decides
    whether and how to append them (AttachUnits/GrowBy)
 2. Precision: money fields use decimal.Decimal, never float64
 3. Availability over strictness: unrecognized enum values resolve to
    documented defaults instead of failing

USAGE:

	alloc := inventory.NewAllocator(nil)
	units := alloc.Generate(project, project.UnitCount, false)
	project.AttachUnits(units)

SEE ALSO:
  - allocator.go: Batch generation and expansion
  - store.go: Persistence interface
  - finance package: Fee calculation over Unit collections
*/
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNIT TYPE - What kind of subdivision this is
// =============================================================================

type UnitType string

const (
	TypeResidential UnitType = "residential"
	TypeCommercial  UnitType = "commercial"
	TypeParking     UnitType = "parking"
	TypeStorage     UnitType = "storage"
)

// UnitTypes returns every declared unit type, in a stable order.
// Report breakdowns iterate this so zero-unit types still appear.
func UnitTypes() []UnitType {
	return []UnitType{TypeResidential, TypeCommercial, TypeParking, TypeStorage}
}

// IsValid reports whether t is one of the declared unit types.
func (t UnitType) IsValid() bool {
	switch t {
	case TypeResidential, TypeCommercial, TypeParking, TypeStorage:
		return true
	}
	return false
}

// =============================================================================
// UNIT STATUS - Sale lifecycle state
// =============================================================================

type UnitStatus string

const (
	StatusAvailable   UnitStatus = "available"
	StatusSold        UnitStatus = "sold"
	StatusReserved    UnitStatus = "reserved"
	StatusMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved, StatusMaintenance:
		return true
	}
	return false
}

// =============================================================================
// UNIT - One sellable subdivision of a project
// =============================================================================

// Unit is owned exclusively by its Project (1:N, no sharing). Units are
// created by the Allocator; only ownership-transfer and status-change
// operations mutate them afterwards.
type Unit struct {
	UnitNumber string // empty only for unassigned placeholders
	ProjectID  string
	Area       float64 // sqft; 0 only for placeholders
	Type       UnitType
	Status     UnitStatus

	// Optional sale and fee data. NullDecimal so absent values survive
	// round-trips through SQLite NULLs.
	EstimatedPrice        decimal.NullDecimal
	OwnerName             string
	PurchaseDate          *time.Time
	MonthlyFeesBase       decimal.NullDecimal // override of the computed fee
	CalculatedMonthlyFees decimal.NullDecimal // persisted snapshot
}

// baseFeeRate is the uniform fee rate applied at generation time,
// regardless of unit type.
var baseFeeRate = decimal.NewFromFloat(0.45)

// MonthlyFee is the convenience default fee for a unit: the explicit
// MonthlyFeesBase override when present, otherwise area * 0.45.
// Pure; the finance package computes method-specific fees instead.
func (u Unit) MonthlyFee() decimal.Decimal {
	if u.MonthlyFeesBase.Valid {
		return u.MonthlyFeesBase.Decimal
	}
	return decimal.NewFromFloat(u.Area).Mul(baseFeeRate).Round(2)
}

// IsPlaceholder reports whether the unit is an unassigned blank awaiting
// manager-assigned numbering.
func (u Unit) IsPlaceholder() bool {
	return u.UnitNumber == "" && u.Area == 0
}

// =============================================================================
// PROJECT - Aggregate owning an ordered unit collection
// =============================================================================

// Project is a development with a target unit count and aggregate building
// area. Insertion order of Units is numbering order.
//
// Invariant after a successful initial allocation:
//
//	len(Units) == UnitCount
//	sum(u.Area) ≈ BuildingArea (within the ±15% per-unit variation)
type Project struct {
	ID               string
	Name             string
	Address          string
	UnitCount        int
	BuildingArea     float64
	ConstructionYear int
	Units            []Unit
}

// AttachUnits appends an allocator batch to the project. Used when
// populating toward the existing UnitCount target.
func (p *Project) AttachUnits(units []Unit) {
	p.Units = append(p.Units, units...)
}

// GrowBy appends an expansion batch and raises the unit count target to
// match. Used with Allocator.Expand.
func (p *Project) GrowBy(units []Unit) {
	p.Units = append(p.Units, units...)
	p.UnitCount += len(units)
}

// TotalArea returns the summed area of all attached units.
func (p *Project) TotalArea() float64 {
	var total float64
	for _, u := range p.Units {
		total += u.Area
	}
	return total
}

// MustParseDecimal parses s, returning zero on malformed input.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
