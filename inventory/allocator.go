/*
allocator.go - Unit batch generation and expansion

PURPOSE:

	Produces a project's inventory of sellable units. Generation is
	randomized but constrained: unit types follow a weighted distribution,
	areas vary ±15% around the per-type target, and prices follow a tiered
	per-sqft base keyed on construction year.

TWO ENTRY POINTS:

	Generate: Initial population of a project, derived from its aggregate
	          BuildingArea (per-unit target = BuildingArea / count).
	Expand:   Incremental batches after capacity grows, drawn from absolute
	          per-type area/price bounds instead of the aggregate.

OWNERSHIP:

	The allocator NEVER mutates the project's unit collection. Both entry
	points return the new batch; the caller appends it explicitly via
	Project.AttachUnits or Project.GrowBy. This keeps side effects visible
	at the call site.

RANDOMNESS:

	All draws go through the Source interface. Production uses a time-seeded
	math/rand generator; tests inject seeded or scripted sources so the
	range properties can be asserted without flakiness.

CONCURRENCY:

	Fully synchronous. Callers must serialize concurrent allocator calls
	against the same Project instance; no internal locking is provided.

SEE ALSO:
  - types.go: Unit/Project definitions and append methods
  - finance package: Fee calculation over generated units
*/
package inventory

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RANDOM SOURCE - Injectable for deterministic tests
// =============================================================================

// Source supplies the allocator's random draws. *math/rand.Rand satisfies
// it directly.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform draw in [0, n).
	Intn(n int) int
}

var _ Source = (*rand.Rand)(nil)

// =============================================================================
// ALLOCATION TABLES
// =============================================================================

// typeWeight pairs a unit type with its cumulative selection probability.
// Tables are ordered; the first entry whose cumulative bound covers the
// draw wins.
type typeWeight struct {
	Type       UnitType
	Cumulative float64
}

// Initial generation: parking-light mix, no storage.
var generateWeights = []typeWeight{
	{TypeResidential, 0.80},
	{TypeCommercial, 0.95},
	{TypeParking, 1.00},
}

// Expansion: storage appears once a building is already populated.
var expandWeights = []typeWeight{
	{TypeResidential, 0.75},
	{TypeCommercial, 0.90},
	{TypeParking, 0.98},
	{TypeStorage, 1.00},
}

// areaFactors scale the per-unit target area during initial generation.
var areaFactors = map[UnitType]float64{
	TypeResidential: 1.0,
	TypeCommercial:  1.2,
	TypeParking:     0.8,
	TypeStorage:     0.7,
}

// typeBounds are the absolute sqft/price ranges used by Expand.
type bounds struct {
	MinArea, MaxArea   int
	MinPrice, MaxPrice int
}

var expandBounds = map[UnitType]bounds{
	TypeResidential: {400, 1600, 180000, 850000},
	TypeCommercial:  {800, 2000, 280000, 950000},
	TypeParking:     {200, 400, 50000, 80000},
	TypeStorage:     {100, 300, 30000, 60000},
}

const (
	unitsPerFloor    = 4
	unitsPerSection  = 100
	minUnitArea      = 300.0
	basePricePerSqft = 350
	modernPriceBump  = 50 // construction year after 2015
	premiumPriceBump = 30 // construction year after 2020
	variationLow     = 0.85
	variationSpan    = 0.30
	placeholderOwner = "Available"
)

// =============================================================================
// ALLOCATOR
// =============================================================================

// Allocator generates unit batches for projects. Safe to share across
// projects; all state lives in the injected Source.
type Allocator struct {
	rng Source
}

// NewAllocator returns an allocator backed by the given Source.
// A nil Source falls back to a time-seeded generator.
func NewAllocator(src Source) *Allocator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Allocator{rng: src}
}

// Generate produces the initial batch of count units for a project.
//
// With blank=true the batch consists of unassigned placeholders (empty
// unit number, zero area, no price) intended for manager-assigned
// numbering later. Otherwise each unit gets:
//   - a floor/section number: 4 units per floor, section letter rotating
//     every 100 units (A-101, A-102, ...)
//   - a type drawn from the generation weight table
//   - an area around BuildingArea/count scaled by type and ±15% variation,
//     floored to a whole sqft and clamped to the 300 sqft minimum
//   - an estimated price from the construction-year tiered base rate
//   - the uniform base monthly fee (area * 0.45)
//
// The batch is returned, not attached; callers append via
// Project.AttachUnits. Size bounds are the caller's responsibility.
func (a *Allocator) Generate(p *Project, count int, blank bool) []Unit {
	units := make([]Unit, 0, count)

	if blank {
		for i := 0; i < count; i++ {
			units = append(units, Unit{
				ProjectID: p.ID,
				Type:      TypeResidential,
				Status:    StatusAvailable,
				OwnerName: placeholderOwner,
			})
		}
		return units
	}

	targetAvgArea := 0.0
	if count > 0 {
		targetAvgArea = p.BuildingArea / float64(count)
	}

	for i := 0; i < count; i++ {
		unitType := a.drawType(generateWeights)
		area := a.drawArea(targetAvgArea, unitType)

		units = append(units, Unit{
			UnitNumber:      numberFor(i),
			ProjectID:       p.ID,
			Area:            area,
			Type:            unitType,
			Status:          StatusAvailable,
			EstimatedPrice:  nullDecimal(a.drawPrice(area, p.ConstructionYear)),
			MonthlyFeesBase: nullDecimal(baseMonthlyFee(area)),
		})
	}
	return units
}

// Expand produces an incremental batch of count units, numbered
// continuing after the project's existing units. Areas and prices come
// from the absolute per-type bounds rather than the aggregate building
// area.
//
// The only failure mode is a non-positive count; callers are expected to
// have validated overall size bounds already.
func (a *Allocator) Expand(p *Project, count int) ([]Unit, error) {
	if count <= 0 {
		return nil, &ValidationError{Field: "count", Value: count, Message: "expansion count must be positive"}
	}

	units := make([]Unit, 0, count)
	for i := 0; i < count; i++ {
		idx := len(p.Units) + i
		unitType := a.drawType(expandWeights)
		b := expandBounds[unitType]
		area := float64(a.intBetween(b.MinArea, b.MaxArea))
		price := decimal.NewFromInt(int64(a.intBetween(b.MinPrice, b.MaxPrice)))

		units = append(units, Unit{
			UnitNumber:      expansionNumberFor(idx),
			ProjectID:       p.ID,
			Area:            area,
			Type:            unitType,
			Status:          StatusAvailable,
			EstimatedPrice:  nullDecimal(price),
			MonthlyFeesBase: nullDecimal(baseMonthlyFee(area)),
		})
	}
	return units, nil
}

// =============================================================================
// DRAWS
// =============================================================================

// drawType picks a unit type from a cumulative weight table. The first
// entry whose cumulative bound reaches the draw wins; residential is the
// fallback for the draw==1.0 edge.
func (a *Allocator) drawType(table []typeWeight) UnitType {
	draw := a.rng.Float64()
	for _, w := range table {
		if draw <= w.Cumulative {
			return w.Type
		}
	}
	return TypeResidential
}

// drawArea scales the target average by type and ±15% variation, floors
// to a whole sqft, and clamps to the hard minimum.
func (a *Allocator) drawArea(targetAvg float64, t UnitType) float64 {
	factor, ok := areaFactors[t]
	if !ok {
		factor = 1.0
	}
	area := math.Floor(targetAvg * factor * a.variation())
	if area < minUnitArea {
		area = minUnitArea
	}
	return area
}

// drawPrice applies the construction-year tiered per-sqft base with ±15%
// variation, rounded to cents.
func (a *Allocator) drawPrice(area float64, constructionYear int) decimal.Decimal {
	perSqft := basePricePerSqft
	if constructionYear > 2015 {
		perSqft += modernPriceBump
	}
	if constructionYear > 2020 {
		perSqft += premiumPriceBump
	}
	return decimal.NewFromInt(int64(perSqft)).
		Mul(decimal.NewFromFloat(area)).
		Mul(decimal.NewFromFloat(a.variation())).
		Round(2)
}

// variation returns a uniform factor in [0.85, 1.15).
func (a *Allocator) variation() float64 {
	return variationLow + a.rng.Float64()*variationSpan
}

// intBetween returns a uniform integer in [min, max].
func (a *Allocator) intBetween(min, max int) int {
	return min + a.rng.Intn(max-min+1)
}

// =============================================================================
// NUMBERING
// =============================================================================

// numberFor builds the initial-generation unit number for index i:
// section letter rotates every 100 units, 4 units per floor.
// i=0 -> A-101, i=4 -> A-201, i=100 -> B-2601.
func numberFor(i int) string {
	section := rune('A' + i/unitsPerSection)
	floor := i/unitsPerFloor + 1
	slot := i%unitsPerFloor + 1
	return fmt.Sprintf("%c-%d%02d", section, floor, slot)
}

// expansionNumberFor continues numbering after existing units. Expansion
// batches always use section A.
func expansionNumberFor(idx int) string {
	floor := idx/unitsPerFloor + 1
	slot := idx%unitsPerFloor + 1
	return fmt.Sprintf("A-%d%02d", floor, slot)
}

func baseMonthlyFee(area float64) decimal.Decimal {
	return decimal.NewFromFloat(area).Mul(baseFeeRate).Round(2)
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
