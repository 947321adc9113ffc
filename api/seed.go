/*
seed.go - Demo data loader

PURPOSE:

	Loads a ready-made project so the fee reports have something to show
	without clicking through unit sales by hand. Generates a mid-size
	building, sells a deterministic slice of its units to named owners,
	and persists the result.
*/
package api

import (
	"net/http"
	"time"

	"github.com/brickline/condo-engine/inventory"
)

var demoOwners = []string{
	"Maria Santos",
	"James Okafor",
	"Lena Fischer",
	"Tom Brennan",
	"Priya Nair",
}

// SeedDemo creates the demo project: 40 units over 48,000 sqft, with
// every third unit sold so summaries show a realistic mix of active and
// available inventory.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	project := &inventory.Project{
		Name:             "Harborview Residences",
		Address:          "12 Quay Street",
		UnitCount:        40,
		BuildingArea:     48000,
		ConstructionYear: 2019,
	}
	project.AttachUnits(h.Allocator.Generate(project, project.UnitCount, false))

	purchase := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sold := 0
	for i := range project.Units {
		if i%3 != 0 {
			continue
		}
		project.Units[i].Status = inventory.StatusSold
		project.Units[i].OwnerName = demoOwners[sold%len(demoOwners)]
		date := purchase.AddDate(0, 0, sold*7)
		project.Units[i].PurchaseDate = &date
		sold++
	}

	id, err := h.Store.SaveProject(r.Context(), project)
	if err != nil {
		h.log.WithError(err).Error("seed demo project")
		writeError(w, http.StatusInternalServerError, "failed to seed demo project")
		return
	}

	h.log.WithField("project_id", id).Info("demo project loaded")
	writeJSON(w, http.StatusCreated, toProjectDTO(project))
}
