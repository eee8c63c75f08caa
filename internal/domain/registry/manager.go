package registry

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/infrastructure/monitoring"
	"github.com/launchdock/backend/internal/shared/types"
)

// Store abstracts the durable config store.
type Store interface {
	Load() types.AppConfig
	Save(types.AppConfig) error
}

// NameTrackedHandle is the sentinel handle recorded for name-tracked apps,
// where no PID is retained.
const NameTrackedHandle = 0

// Manager owns the definition list and the running-process map.
//
// The two are guarded by separate locks. Neither lock is ever held across an
// OS process call: the launcher and stopper do their bookkeeping through
// TrackPID/TrackName/Take and issue the OS command outside the lock.
type Manager struct {
	mu   sync.RWMutex
	defs []types.AppDefinition // Protected by mu

	procMu sync.Mutex
	procs  map[string]int // Protected by procMu; key is id or id:name

	store   Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a manager and loads the persisted definitions.
func NewManager(store Store, logger *logging.Logger) *Manager {
	cfg := store.Load()
	m := &Manager{
		defs:   cfg.RegisteredApps,
		procs:  make(map[string]int),
		store:  store,
		logger: logger,
	}
	logger.Info("Registry loaded", zap.Int("definitions", len(m.defs)))
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	metrics.SetDefinitions(len(m.defs))
	return m
}

// NameKey derives the process-map key for a name-tracked app.
func NameKey(id, name string) string {
	return id + ":" + name
}

// List returns an ordered copy of all definitions.
func (m *Manager) List() []types.AppDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	defs := make([]types.AppDefinition, len(m.defs))
	copy(defs, m.defs)
	return defs
}

// Get retrieves a definition by ID.
func (m *Manager) Get(id string) (types.AppDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, def := range m.defs {
		if def.ID == id {
			return def, true
		}
	}
	return types.AppDefinition{}, false
}

// Add assigns a fresh unique ID, appends the definition, and persists.
// The in-memory append is rolled back if the store write fails.
func (m *Manager) Add(fields types.AppFields) (types.AppDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	def := fields.Definition(uuid.NewString())
	m.defs = append(m.defs, def)

	if err := m.persistLocked(); err != nil {
		m.defs = m.defs[:len(m.defs)-1]
		return types.AppDefinition{}, err
	}

	m.logger.Info("Definition added",
		zap.String("app_id", def.ID),
		zap.String("name", def.Name),
	)
	return def, nil
}

// Update replaces all mutable fields of the definition matching id and
// persists. Returns ErrNotFound if no definition matches. The in-memory
// replacement is rolled back if the store write fails.
func (m *Manager) Update(id string, fields types.AppFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, def := range m.defs {
		if def.ID != id {
			continue
		}

		m.defs[i] = fields.Definition(id)
		if err := m.persistLocked(); err != nil {
			m.defs[i] = def
			return err
		}

		m.logger.Info("Definition updated", zap.String("app_id", id))
		return nil
	}

	return ErrNotFound
}

// Remove deletes the matching definition and persists. Removing an absent
// id is a no-op that still succeeds.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, def := range m.defs {
		if def.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := m.defs[idx]
	m.defs = append(m.defs[:idx], m.defs[idx+1:]...)

	if err := m.persistLocked(); err != nil {
		m.defs = append(m.defs[:idx], append([]types.AppDefinition{removed}, m.defs[idx:]...)...)
		return err
	}

	m.logger.Info("Definition removed", zap.String("app_id", id))
	return nil
}

// Reset clears all definitions and persists.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.defs
	m.defs = nil

	if err := m.persistLocked(); err != nil {
		m.defs = previous
		return err
	}

	m.logger.Info("Configuration reset")
	return nil
}

// persistLocked writes the current definition list. Caller holds mu.
func (m *Manager) persistLocked() error {
	cfg := types.AppConfig{RegisteredApps: make([]types.AppDefinition, len(m.defs))}
	copy(cfg.RegisteredApps, m.defs)

	if err := m.store.Save(cfg); err != nil {
		m.logger.Error("Failed to persist config", zap.Error(err))
		return &PersistenceError{Err: err}
	}

	if m.metrics != nil {
		m.metrics.SetDefinitions(len(m.defs))
	}
	return nil
}

// IsRunning reports whether the registry has a live entry for the app,
// under either key form (plain id for PID-tracked apps, id:name for
// name-tracked apps).
func (m *Manager) IsRunning(id string) bool {
	m.procMu.Lock()
	defer m.procMu.Unlock()

	if _, ok := m.procs[id]; ok {
		return true
	}
	prefix := id + ":"
	for key := range m.procs {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// TrackPID records a PID-tracked running process for the app.
func (m *Manager) TrackPID(id string, pid int) {
	m.procMu.Lock()
	m.procs[id] = pid
	count := len(m.procs)
	m.procMu.Unlock()

	if m.metrics != nil {
		m.metrics.SetTrackedProcesses(count)
	}
}

// TrackName records a name-tracked marker for the app. No PID is retained;
// stopping must use the recorded name.
func (m *Manager) TrackName(id, name string) {
	m.procMu.Lock()
	m.procs[NameKey(id, name)] = NameTrackedHandle
	count := len(m.procs)
	m.procMu.Unlock()

	if m.metrics != nil {
		m.metrics.SetTrackedProcesses(count)
	}
}

// Take removes the entry under the given key and returns its handle.
// The removal happens before any OS termination is attempted, so a stop
// always clears the tracked state regardless of the OS outcome.
func (m *Manager) Take(key string) (int, bool) {
	m.procMu.Lock()
	handle, ok := m.procs[key]
	if ok {
		delete(m.procs, key)
	}
	count := len(m.procs)
	m.procMu.Unlock()

	if ok && m.metrics != nil {
		m.metrics.SetTrackedProcesses(count)
	}
	return handle, ok
}

// RunningCount returns the number of tracked running processes.
func (m *Manager) RunningCount() int {
	m.procMu.Lock()
	defer m.procMu.Unlock()
	return len(m.procs)
}

// Stats returns registry statistics.
func (m *Manager) Stats() types.RegistryStats {
	m.mu.RLock()
	total := len(m.defs)
	enabled := 0
	for _, def := range m.defs {
		if def.Enabled {
			enabled++
		}
	}
	m.mu.RUnlock()

	return types.RegistryStats{
		TotalApps:   total,
		EnabledApps: enabled,
		RunningApps: m.RunningCount(),
	}
}
