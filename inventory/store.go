/*
store.go - Persistence interface for projects and their units

PURPOSE:

	Defines the interface between the inventory core and the database.
	The core never calls persistence directly; the application-service
	layer (api package) loads projects, runs the allocator and the fee
	engine over in-memory collections, and saves results back.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - inventory/store: In-memory for testing/dev

UNIT OWNERSHIP:

	Units are stored as rows owned by their project. Loading a project
	always loads its full ordered unit collection; there is no partial
	hydration. Units are removed only via whole-project deletion.
*/
package inventory

import "context"

// ProjectStore handles persistence of projects and their unit collections.
type ProjectStore interface {
	// SaveProject persists a project and its units, returning the
	// project ID (assigned on first save).
	SaveProject(ctx context.Context, p *Project) (string, error)

	// GetProject returns the project with its ordered unit collection,
	// or ErrProjectNotFound.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns all projects with their units, ordered by name.
	ListProjects(ctx context.Context) ([]*Project, error)

	// AppendUnits persists an allocator batch for an existing project and
	// records the project's (possibly grown) unit count.
	AppendUnits(ctx context.Context, projectID string, unitCount int, units []Unit) error

	// UpdateUnitStatus transitions one unit's sale status.
	UpdateUnitStatus(ctx context.Context, projectID, unitNumber string, status UnitStatus) error

	// DeleteProject removes a project and every unit it owns.
	DeleteProject(ctx context.Context, id string) error

	// Close releases underlying resources.
	Close() error
}
