/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:

	Implements inventory.ProjectStore using SQLite. In production the same
	patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:

	projects: One row per development (target count, area, year)
	units:    Project-owned unit rows, ordered by position

ORDERING:

	Unit insertion order is numbering order, so units carry an explicit
	position column and loads always ORDER BY position. Appends continue
	from the current maximum.

LEGACY STATUS VALUES:

	Early schema versions stored unit status as "active"/"inactive" (and a
	short-lived "occupied"/"free" variant). Rows written by those versions
	are mapped onto the current enum through an explicit alias table at
	scan time; the domain packages never see legacy strings.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
	multiple readers don't block, single writer at a time.

USAGE:

	store, err := sqlite.New("./data/condo.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

MIGRATION:

	Schema is auto-migrated on New(). For production, use a proper
	migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - inventory/store.go: Interface definition
  - inventory/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/brickline/condo-engine/inventory"
)

// Store implements inventory.ProjectStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ inventory.ProjectStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		unit_count INTEGER NOT NULL,
		building_area REAL NOT NULL,
		construction_year INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		unit_number TEXT NOT NULL,
		area REAL NOT NULL,
		unit_type TEXT NOT NULL,
		status TEXT NOT NULL,
		estimated_price TEXT,
		owner_name TEXT,
		purchase_date TEXT,
		monthly_fees_base TEXT,
		calculated_monthly_fees TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_units_project
		ON units(project_id, position);
	CREATE INDEX IF NOT EXISTS idx_units_project_number
		ON units(project_id, unit_number);
	CREATE INDEX IF NOT EXISTS idx_units_status
		ON units(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEGACY STATUS ALIASES
// =============================================================================

// legacyStatusAliases maps status values written by older schema versions
// onto the current enum. Versioned: later migrations append new blocks,
// existing entries are never edited.
var legacyStatusAliases = map[string]inventory.UnitStatus{
	// v1: boolean-style occupancy flags
	"active":   inventory.StatusSold,
	"inactive": inventory.StatusAvailable,
	// v2: short-lived occupancy wording
	"occupied": inventory.StatusSold,
	"free":     inventory.StatusAvailable,
}

// scanStatus resolves a stored status string, consulting the legacy alias
// table for rows written by older schema versions.
func scanStatus(raw string) inventory.UnitStatus {
	status := inventory.UnitStatus(raw)
	if status.IsValid() {
		return status
	}
	if aliased, ok := legacyStatusAliases[raw]; ok {
		return aliased
	}
	return inventory.StatusAvailable
}

// =============================================================================
// PROJECT OPERATIONS
// =============================================================================

// SaveProject persists a project and its full unit collection. A project
// without an ID gets one assigned; an existing project's units are
// replaced wholesale so the stored collection always mirrors the
// aggregate.
func (s *Store) SaveProject(ctx context.Context, p *inventory.Project) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
		for i := range p.Units {
			p.Units[i].ProjectID = p.ID
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, address, unit_count, building_area, construction_year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			unit_count = excluded.unit_count,
			building_area = excluded.building_area,
			construction_year = excluded.construction_year,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Address, p.UnitCount, p.BuildingArea, p.ConstructionYear, now, now)
	if err != nil {
		return "", err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM units WHERE project_id = ?`, p.ID); err != nil {
		return "", err
	}
	if err := insertUnits(ctx, tx, p.ID, 0, p.Units); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return p.ID, nil
}

// GetProject returns the project with its ordered unit collection.
func (s *Store) GetProject(ctx context.Context, id string) (*inventory.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := &inventory.Project{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, address, unit_count, building_area, construction_year
		FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Address, &p.UnitCount, &p.BuildingArea, &p.ConstructionYear)
	if err == sql.ErrNoRows {
		return nil, inventory.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	units, err := s.loadUnits(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Units = units
	return p, nil
}

// ListProjects returns all projects with their units, ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]*inventory.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, unit_count, building_area, construction_year
		FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*inventory.Project
	for rows.Next() {
		p := &inventory.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.UnitCount, &p.BuildingArea, &p.ConstructionYear); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range projects {
		units, err := s.loadUnits(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Units = units
	}
	return projects, nil
}

// AppendUnits persists an allocator batch for an existing project and
// records its (possibly grown) unit count.
func (s *Store) AppendUnits(ctx context.Context, projectID string, unitCount int, units []inventory.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var nextPos int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM units WHERE project_id = ?`, projectID).
		Scan(&nextPos)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE projects SET unit_count = ?, updated_at = ? WHERE id = ?`,
		unitCount, time.Now().UTC().Format(time.RFC3339), projectID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return inventory.ErrProjectNotFound
	}

	if err := insertUnits(ctx, tx, projectID, nextPos, units); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateUnitStatus transitions one unit's sale status.
func (s *Store) UpdateUnitStatus(ctx context.Context, projectID, unitNumber string, status inventory.UnitStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE units SET status = ? WHERE project_id = ? AND unit_number = ?`,
		string(status), projectID, unitNumber)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return inventory.ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes a project and every unit it owns.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM units WHERE project_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return inventory.ErrProjectNotFound
	}
	return tx.Commit()
}

// =============================================================================
// ROW HELPERS
// =============================================================================

func insertUnits(ctx context.Context, tx *sql.Tx, projectID string, startPos int, units []inventory.Unit) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO units (id, project_id, position, unit_number, area, unit_type, status,
			estimated_price, owner_name, purchase_date, monthly_fees_base, calculated_monthly_fees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, u := range units {
		var purchaseDate sql.NullString
		if u.PurchaseDate != nil {
			purchaseDate = sql.NullString{String: u.PurchaseDate.UTC().Format(time.RFC3339), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), projectID, startPos+i, u.UnitNumber, u.Area,
			string(u.Type), string(u.Status),
			nullDecimalString(u.EstimatedPrice), u.OwnerName, purchaseDate,
			nullDecimalString(u.MonthlyFeesBase), nullDecimalString(u.CalculatedMonthlyFees), now)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadUnits(ctx context.Context, projectID string) ([]inventory.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT unit_number, area, unit_type, status,
			estimated_price, owner_name, purchase_date, monthly_fees_base, calculated_monthly_fees
		FROM units WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []inventory.Unit
	for rows.Next() {
		var (
			u            inventory.Unit
			unitType     string
			status       string
			price        sql.NullString
			owner        sql.NullString
			purchaseDate sql.NullString
			feesBase     sql.NullString
			feesCalc     sql.NullString
		)
		if err := rows.Scan(&u.UnitNumber, &u.Area, &unitType, &status,
			&price, &owner, &purchaseDate, &feesBase, &feesCalc); err != nil {
			return nil, err
		}

		u.ProjectID = projectID
		u.Type = inventory.UnitType(unitType)
		if !u.Type.IsValid() {
			u.Type = inventory.TypeResidential
		}
		u.Status = scanStatus(status)
		u.EstimatedPrice = scanDecimal(price)
		u.OwnerName = owner.String
		u.MonthlyFeesBase = scanDecimal(feesBase)
		u.CalculatedMonthlyFees = scanDecimal(feesCalc)
		if purchaseDate.Valid {
			if t, err := time.Parse(time.RFC3339, purchaseDate.String); err == nil {
				u.PurchaseDate = &t
			}
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func nullDecimalString(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

func scanDecimal(s sql.NullString) decimal.NullDecimal {
	if !s.Valid {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
