package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *Store {
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProject() *inventory.Project {
	purchase := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	return &inventory.Project{
		Name:             "Harbor Tower",
		Address:          "1 Pier Road",
		UnitCount:        2,
		BuildingArea:     2400,
		ConstructionYear: 2017,
		Units: []inventory.Unit{
			{
				UnitNumber:      "A-101",
				Area:            850,
				Type:            inventory.TypeResidential,
				Status:          inventory.StatusSold,
				OwnerName:       "Maria Santos",
				PurchaseDate:    &purchase,
				EstimatedPrice:  decimal.NewNullDecimal(decimal.RequireFromString("310000.00")),
				MonthlyFeesBase: decimal.NewNullDecimal(decimal.RequireFromString("382.50")),
			},
			{
				UnitNumber: "A-102",
				Area:       400,
				Type:       inventory.TypeParking,
				Status:     inventory.StatusAvailable,
			},
		},
	}
}

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestSaveAndGetProject_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveProject(ctx, sampleProject())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := store.GetProject(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Harbor Tower", loaded.Name)
	assert.Equal(t, 2, loaded.UnitCount)
	assert.Equal(t, 2017, loaded.ConstructionYear)
	require.Len(t, loaded.Units, 2)

	// Insertion order is numbering order
	first := loaded.Units[0]
	assert.Equal(t, "A-101", first.UnitNumber)
	assert.Equal(t, inventory.StatusSold, first.Status)
	assert.Equal(t, "Maria Santos", first.OwnerName)
	require.True(t, first.EstimatedPrice.Valid)
	assert.True(t, first.EstimatedPrice.Decimal.Equal(decimal.RequireFromString("310000.00")))
	require.True(t, first.MonthlyFeesBase.Valid)
	assert.True(t, first.MonthlyFeesBase.Decimal.Equal(decimal.RequireFromString("382.50")))
	require.NotNil(t, first.PurchaseDate)
	assert.Equal(t, 2024, first.PurchaseDate.Year())

	second := loaded.Units[1]
	assert.Equal(t, "A-102", second.UnitNumber)
	assert.False(t, second.EstimatedPrice.Valid, "absent price survives as NULL")
	assert.Nil(t, second.PurchaseDate)
}

func TestGetProject_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, inventory.ErrProjectNotFound)
}

func TestAppendUnits_ContinuesOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveProject(ctx, sampleProject())
	require.NoError(t, err)

	batch := []inventory.Unit{{
		UnitNumber: "A-201",
		Area:       500,
		Type:       inventory.TypeResidential,
		Status:     inventory.StatusAvailable,
	}}
	require.NoError(t, store.AppendUnits(ctx, id, 3, batch))

	loaded, err := store.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.UnitCount)
	require.Len(t, loaded.Units, 3)
	assert.Equal(t, "A-201", loaded.Units[2].UnitNumber, "appended units load last")
}

func TestAppendUnits_MissingProject(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendUnits(context.Background(), "missing", 1, []inventory.Unit{{UnitNumber: "A-101"}})
	assert.ErrorIs(t, err, inventory.ErrProjectNotFound)
}

func TestUpdateUnitStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveProject(ctx, sampleProject())
	require.NoError(t, err)

	require.NoError(t, store.UpdateUnitStatus(ctx, id, "A-102", inventory.StatusReserved))

	loaded, err := store.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusReserved, loaded.Units[1].Status)
}

func TestDeleteProject_RemovesUnits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveProject(ctx, sampleProject())
	require.NoError(t, err)
	require.NoError(t, store.DeleteProject(ctx, id))

	_, err = store.GetProject(ctx, id)
	assert.ErrorIs(t, err, inventory.ErrProjectNotFound)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM units`).Scan(&count))
	assert.Zero(t, count, "owned units are removed with the project")
}

// =============================================================================
// LEGACY STATUS ALIASES
// =============================================================================

func TestScanStatus_LegacyAliases(t *testing.T) {
	assert.Equal(t, inventory.StatusSold, scanStatus("active"))
	assert.Equal(t, inventory.StatusAvailable, scanStatus("inactive"))
	assert.Equal(t, inventory.StatusSold, scanStatus("occupied"))
	assert.Equal(t, inventory.StatusAvailable, scanStatus("free"))
	assert.Equal(t, inventory.StatusReserved, scanStatus("reserved"), "current values pass through")
	assert.Equal(t, inventory.StatusAvailable, scanStatus("garbage"), "unknown values default to available")
}

func TestGetProject_MapsLegacyRows(t *testing.T) {
	// GIVEN: A unit row written by the v1 schema with status "active"
	// WHEN: Loading the project
	// THEN: The domain sees the current enum, never the legacy string

	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveProject(ctx, sampleProject())
	require.NoError(t, err)

	_, err = store.db.Exec(
		`UPDATE units SET status = 'active' WHERE project_id = ? AND unit_number = 'A-102'`, id)
	require.NoError(t, err)

	loaded, err := store.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusSold, loaded.Units[1].Status)
}
