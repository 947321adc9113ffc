/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:

	Request types carry go-playground/validator tags; handlers run them
	through the shared validator before touching domain logic. The 1-500
	unit bound lives here because the allocator documents size validation
	as a caller responsibility.

MONEY:

	All currency values are rendered as fixed two-decimal strings, never
	JSON numbers, so clients don't lose precision in float parsing.
*/
package api

import (
	"time"

	"github.com/brickline/condo-engine/finance"
	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateProjectRequest creates a project and generates its initial units.
type CreateProjectRequest struct {
	Name             string  `json:"name" validate:"required"`
	Address          string  `json:"address"`
	UnitCount        int     `json:"unit_count" validate:"required,min=1,max=500"`
	BuildingArea     float64 `json:"building_area" validate:"required,gt=0"`
	ConstructionYear int     `json:"construction_year" validate:"required,min=1900,max=2100"`

	// Blank requests placeholder units for manager-assigned numbering.
	Blank bool `json:"blank"`
}

// ExpandProjectRequest grows an existing project's inventory.
type ExpandProjectRequest struct {
	Count int `json:"count" validate:"required,min=1,max=500"`
}

// UpdateUnitStatusRequest transitions a unit's sale status.
type UpdateUnitStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=available sold reserved maintenance"`
	OwnerName string `json:"owner_name"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// UnitDTO represents a unit in API responses.
type UnitDTO struct {
	UnitNumber            string  `json:"unit_number"`
	Area                  float64 `json:"area"`
	Type                  string  `json:"type"`
	Status                string  `json:"status"`
	EstimatedPrice        *string `json:"estimated_price,omitempty"`
	OwnerName             string  `json:"owner_name,omitempty"`
	PurchaseDate          *string `json:"purchase_date,omitempty"`
	MonthlyFeesBase       *string `json:"monthly_fees_base,omitempty"`
	CalculatedMonthlyFees *string `json:"calculated_monthly_fees,omitempty"`
}

// ProjectDTO represents a project with its unit collection.
type ProjectDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address,omitempty"`
	UnitCount        int       `json:"unit_count"`
	BuildingArea     float64   `json:"building_area"`
	ConstructionYear int       `json:"construction_year"`
	TotalArea        float64   `json:"total_area"`
	Units            []UnitDTO `json:"units"`
}

// FinancialRecordDTO is one unit's computed monthly fee.
type FinancialRecordDTO struct {
	UnitNumber    string            `json:"unit_number"`
	MonthlyAmount string            `json:"monthly_amount"`
	UnitType      string            `json:"unit_type"`
	Area          float64           `json:"area"`
	Details       map[string]string `json:"details"`
}

// FeeReportDTO is the per-method fee report for a project.
type FeeReportDTO struct {
	ProjectID string               `json:"project_id"`
	Method    string               `json:"method"`
	Records   []FinancialRecordDTO `json:"records"`
	Total     string               `json:"total_monthly_income"`
}

// FinancialSummaryDTO is the aggregate report for a project.
type FinancialSummaryDTO struct {
	ProjectID          string            `json:"project_id"`
	Method             string            `json:"method"`
	TotalMonthlyIncome string            `json:"total_monthly_income"`
	AverageFeesPerUnit string            `json:"average_fees_per_unit"`
	TotalUnits         int               `json:"total_units"`
	ActiveUnits        int               `json:"active_units"`
	BreakdownByType    map[string]string `json:"breakdown_by_type"`
}

// AnnualIncomeDTO is the twelve-month income projection.
type AnnualIncomeDTO struct {
	ProjectID    string `json:"project_id"`
	AnnualIncome string `json:"annual_income"`
}

// DebtToIncomeDTO is the ratio report.
type DebtToIncomeDTO struct {
	Debt   string `json:"debt"`
	Income string `json:"income"`
	Ratio  string `json:"ratio_percent"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toUnitDTO(u inventory.Unit) UnitDTO {
	dto := UnitDTO{
		UnitNumber: u.UnitNumber,
		Area:       u.Area,
		Type:       string(u.Type),
		Status:     string(u.Status),
		OwnerName:  u.OwnerName,
	}
	if u.EstimatedPrice.Valid {
		s := u.EstimatedPrice.Decimal.StringFixed(2)
		dto.EstimatedPrice = &s
	}
	if u.MonthlyFeesBase.Valid {
		s := u.MonthlyFeesBase.Decimal.StringFixed(2)
		dto.MonthlyFeesBase = &s
	}
	if u.CalculatedMonthlyFees.Valid {
		s := u.CalculatedMonthlyFees.Decimal.StringFixed(2)
		dto.CalculatedMonthlyFees = &s
	}
	if u.PurchaseDate != nil {
		s := u.PurchaseDate.UTC().Format(time.RFC3339)
		dto.PurchaseDate = &s
	}
	return dto
}

func toUnitDTOs(units []inventory.Unit) []UnitDTO {
	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = toUnitDTO(u)
	}
	return dtos
}

func toProjectDTO(p *inventory.Project) ProjectDTO {
	return ProjectDTO{
		ID:               p.ID,
		Name:             p.Name,
		Address:          p.Address,
		UnitCount:        p.UnitCount,
		BuildingArea:     p.BuildingArea,
		ConstructionYear: p.ConstructionYear,
		TotalArea:        p.TotalArea(),
		Units:            toUnitDTOs(p.Units),
	}
}

func toRecordDTOs(records []finance.FinancialRecord) []FinancialRecordDTO {
	dtos := make([]FinancialRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = FinancialRecordDTO{
			UnitNumber:    r.UnitNumber,
			MonthlyAmount: r.MonthlyAmount.StringFixed(2),
			UnitType:      string(r.UnitType),
			Area:          r.Area,
			Details:       r.Details,
		}
	}
	return dtos
}

func toSummaryDTO(projectID string, method finance.Method, s finance.FinancialSummary) FinancialSummaryDTO {
	breakdown := make(map[string]string, len(s.BreakdownByType))
	for t, amount := range s.BreakdownByType {
		breakdown[string(t)] = amount.StringFixed(2)
	}
	return FinancialSummaryDTO{
		ProjectID:          projectID,
		Method:             string(method),
		TotalMonthlyIncome: s.TotalMonthlyIncome.StringFixed(2),
		AverageFeesPerUnit: s.AverageFeesPerUnit.StringFixed(2),
		TotalUnits:         s.TotalUnits,
		ActiveUnits:        s.ActiveUnits,
		BreakdownByType:    breakdown,
	}
}
