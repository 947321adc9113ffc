// Package store provides ProjectStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/brickline/condo-engine/inventory"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	projects map[string]*inventory.Project
}

func NewMemory() *Memory {
	return &Memory{projects: make(map[string]*inventory.Project)}
}

func (m *Memory) SaveProject(_ context.Context, p *inventory.Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
		for i := range p.Units {
			p.Units[i].ProjectID = p.ID
		}
	}
	m.projects[p.ID] = cloneProject(p)
	return p.ID, nil
}

func (m *Memory) GetProject(_ context.Context, id string) (*inventory.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, inventory.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (m *Memory) ListProjects(_ context.Context) ([]*inventory.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*inventory.Project, 0, len(m.projects))
	for _, p := range m.projects {
		result = append(result, cloneProject(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) AppendUnits(_ context.Context, projectID string, unitCount int, units []inventory.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return inventory.ErrProjectNotFound
	}
	p.Units = append(p.Units, units...)
	p.UnitCount = unitCount
	return nil
}

func (m *Memory) UpdateUnitStatus(_ context.Context, projectID, unitNumber string, status inventory.UnitStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return inventory.ErrProjectNotFound
	}
	for i := range p.Units {
		if p.Units[i].UnitNumber == unitNumber {
			p.Units[i].Status = status
			return nil
		}
	}
	return inventory.ErrProjectNotFound
}

func (m *Memory) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return inventory.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *Memory) Close() error { return nil }

// cloneProject deep-copies the unit slice so callers can't mutate stored
// state through a returned pointer.
func cloneProject(p *inventory.Project) *inventory.Project {
	cp := *p
	cp.Units = make([]inventory.Unit, len(p.Units))
	copy(cp.Units, p.Units)
	return &cp
}
