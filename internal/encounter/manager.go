package encounter

import (
	"log/slog"
	"sync"

	"github.com/sprayline/sprayline-server/internal/game"
)

// Manager tracks all active encounters by id.
type Manager struct {
	encounters map[string]*Encounter
	mu         sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		encounters: make(map[string]*Encounter),
	}
}

// Start creates and starts an encounter, registering it under its id.
func (m *Manager) Start(spotID string, difficulty game.Difficulty, opts Options) *Encounter {
	e := New(spotID, difficulty, opts)

	m.mu.Lock()
	m.encounters[e.ID] = e
	m.mu.Unlock()

	e.Start()
	return e
}

// Get returns an encounter by id, or nil.
func (m *Manager) Get(id string) *Encounter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.encounters[id]
}

// Remove drops an encounter from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.encounters, id)
	m.mu.Unlock()
	slog.Debug("encounter removed", "encounter", id)
}

// Count returns the number of registered encounters.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.encounters)
}

// CancelAll cancels every active encounter, e.g. on shutdown.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.encounters {
		e.Cancel()
		delete(m.encounters, id)
	}
}
