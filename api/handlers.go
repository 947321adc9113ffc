/*
handlers.go - HTTP API handlers for the condo engine

PURPOSE:

	Exposes the inventory core and fee engine via REST API. This is the
	application-service layer: it owns persistence and presentation, loads
	projects, runs the allocator and the fee engine over in-memory
	collections, and saves results back. The core packages never touch the
	store or the wire.

ENDPOINTS:

	Projects:
	  GET    /api/projects                      List projects
	  POST   /api/projects                      Create project + generate units
	  GET    /api/projects/{id}                 Project with units
	  DELETE /api/projects/{id}                 Delete project and its units
	  POST   /api/projects/{id}/units           Expand inventory
	  PUT    /api/projects/{id}/units/{number}/status  Status transition

	Reports:
	  GET /api/projects/{id}/fees?method=...    Per-unit fee records
	  GET /api/projects/{id}/summary?method=... Aggregate summary
	  GET /api/projects/{id}/annual-income      Twelve-month projection
	  GET /api/reports/debt-to-income?debt=&income=

	Demo:
	  POST /api/seed                            Load the demo project

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Validation errors, invalid input
	- 404: Project not found
	- 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/brickline/condo-engine/finance"
	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     inventory.ProjectStore
	Allocator *inventory.Allocator

	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandler creates a handler over the given store. A nil allocator gets
// the production (time-seeded) one; tests pass a seeded allocator.
func NewHandler(store inventory.ProjectStore, alloc *inventory.Allocator, log *logrus.Logger) *Handler {
	if alloc == nil {
		alloc = inventory.NewAllocator(nil)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Store:     store,
		Allocator: alloc,
		validate:  validator.New(),
		log:       log,
	}
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// CreateProject creates a project and generates its initial inventory.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project := &inventory.Project{
		Name:             req.Name,
		Address:          req.Address,
		UnitCount:        req.UnitCount,
		BuildingArea:     req.BuildingArea,
		ConstructionYear: req.ConstructionYear,
	}
	project.AttachUnits(h.Allocator.Generate(project, req.UnitCount, req.Blank))

	id, err := h.Store.SaveProject(r.Context(), project)
	if err != nil {
		h.log.WithError(err).Error("save project")
		writeError(w, http.StatusInternalServerError, "failed to save project")
		return
	}

	h.log.WithFields(logrus.Fields{"project_id": id, "units": len(project.Units)}).Info("project created")
	writeJSON(w, http.StatusCreated, toProjectDTO(project))
}

// ListProjects returns all projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list projects")
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = toProjectDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProject returns one project with its unit collection.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(project))
}

// DeleteProject removes a project and every unit it owns.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExpandProject grows a project's inventory by the requested count.
func (h *Handler) ExpandProject(w http.ResponseWriter, r *http.Request) {
	var req ExpandProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	batch, err := h.Allocator.Expand(project, req.Count)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	project.GrowBy(batch)

	if err := h.Store.AppendUnits(r.Context(), project.ID, project.UnitCount, batch); err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{"project_id": project.ID, "added": len(batch)}).Info("inventory expanded")
	writeJSON(w, http.StatusCreated, toUnitDTOs(batch))
}

// UpdateUnitStatus transitions one unit's sale status.
func (h *Handler) UpdateUnitStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateUnitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	projectID := chi.URLParam(r, "id")
	unitNumber := chi.URLParam(r, "number")
	if err := h.Store.UpdateUnitStatus(r.Context(), projectID, unitNumber, inventory.UnitStatus(req.Status)); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetFees returns per-unit fee records for the requested method.
func (h *Handler) GetFees(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	method := finance.ParseMethod(r.URL.Query().Get("method"))
	records := finance.CalculateMonthlyFees(project.Units, method)

	writeJSON(w, http.StatusOK, FeeReportDTO{
		ProjectID: project.ID,
		Method:    string(method),
		Records:   toRecordDTOs(records),
		Total:     finance.TotalIncome(records).StringFixed(2),
	})
}

// GetSummary returns the aggregate financial summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	method := finance.ParseMethod(r.URL.Query().Get("method"))
	summary := finance.Summarize(project.Units, method)
	writeJSON(w, http.StatusOK, toSummaryDTO(project.ID, method, summary))
}

// GetAnnualIncome returns the twelve-month projection from standard fees.
func (h *Handler) GetAnnualIncome(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, AnnualIncomeDTO{
		ProjectID:    project.ID,
		AnnualIncome: finance.AnnualIncome(project.Units).StringFixed(2),
	})
}

// GetDebtToIncome computes the debt-to-income ratio from query params.
func (h *Handler) GetDebtToIncome(w http.ResponseWriter, r *http.Request) {
	debt, err := decimal.NewFromString(r.URL.Query().Get("debt"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "debt must be a decimal number")
		return
	}
	income, err := decimal.NewFromString(r.URL.Query().Get("income"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "income must be a decimal number")
		return
	}

	writeJSON(w, http.StatusOK, DebtToIncomeDTO{
		Debt:   debt.StringFixed(2),
		Income: income.StringFixed(2),
		Ratio:  finance.DebtToIncomeRatio(debt, income).StringFixed(2),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadProject fetches the project from the URL id, writing the error
// response itself on failure.
func (h *Handler) loadProject(w http.ResponseWriter, r *http.Request) (*inventory.Project, bool) {
	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return nil, false
	}
	return project, true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case inventory.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case inventory.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
