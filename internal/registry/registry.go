// Package registry owns the canonical, persisted collection of application
// descriptors and exposes lookup, search, and statistics over it.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/scanner"
	"github.com/ayvor/assistant/core/internal/shared/types"
)

// AppScanner produces the descriptor set for a rescan.
type AppScanner interface {
	Scan(ctx context.Context, maxDepth int) []types.AppDescriptor
}

// snapshot is an immutable point-in-time view of the registry. Readers load
// it atomically and never observe a partial scan.
type snapshot struct {
	apps      []types.AppDescriptor
	updatedAt time.Time
}

// Manager is the application registry. Initialize and RescanAndPersist are
// mutually exclusive through a single-writer lock; lookups read the current
// snapshot without blocking.
type Manager struct {
	log       *zap.Logger
	scanner   AppScanner
	storePath string
	maxDepth  int

	writeMu sync.Mutex
	current atomic.Pointer[snapshot]
	loaded  atomic.Bool
}

// NewManager creates a registry persisting to storePath.
func NewManager(log *zap.Logger, sc AppScanner, storePath string, maxDepth int) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = scanner.DefaultMaxDepth
	}
	m := &Manager{log: log, scanner: sc, storePath: storePath, maxDepth: maxDepth}
	m.current.Store(&snapshot{})
	return m
}

// Initialize loads persisted descriptors from disk, or seeds the registry
// with the static system-app set when no file exists. Idempotent.
func (m *Manager) Initialize(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.loaded.Load() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	apps, updatedAt, err := m.readStore()
	switch {
	case err == nil:
		m.log.Info("registry loaded from disk",
			zap.String("path", m.storePath),
			zap.Int("applications", len(apps)),
		)
	case os.IsNotExist(err):
		apps, updatedAt = scanner.SystemApps(), time.Now().UTC()
		m.log.Info("no persisted registry, seeding system apps",
			zap.Int("applications", len(apps)),
		)
	default:
		// A corrupt store is recoverable: the next rescan rewrites it.
		apps, updatedAt = scanner.SystemApps(), time.Now().UTC()
		m.log.Warn("persisted registry unreadable, seeding system apps",
			zap.String("path", m.storePath),
			zap.Error(err),
		)
	}

	m.current.Store(&snapshot{apps: apps, updatedAt: updatedAt})
	m.loaded.Store(true)
	return nil
}

// RescanAndPersist runs a full scan, replaces the in-memory set wholesale,
// and rewrites the persisted document. Replace, never merge: the scanner is
// the single source of truth for what exists on this machine.
func (m *Manager) RescanAndPersist(ctx context.Context) (types.RegistryStats, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return types.RegistryStats{}, err
	}

	apps := m.scanner.Scan(ctx, m.maxDepth)
	now := time.Now().UTC()

	if err := m.writeStore(apps); err != nil {
		return types.RegistryStats{}, fmt.Errorf("persist registry: %w", err)
	}

	m.current.Store(&snapshot{apps: apps, updatedAt: now})
	m.loaded.Store(true)

	m.log.Info("registry rescanned",
		zap.Int("applications", len(apps)),
		zap.String("path", m.storePath),
	)
	return m.Statistics(), nil
}

// Find resolves a free-text query to a descriptor using three tiers of
// precedence: exact name, exact alias, then substring on the name. Exact
// matches must win so a short query cannot shadow a perfectly named app.
func (m *Manager) Find(query string) (types.AppDescriptor, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return types.AppDescriptor{}, false
	}
	apps := m.current.Load().apps

	for _, a := range apps {
		if strings.ToLower(a.Name) == q {
			return a.Clone(), true
		}
	}
	for _, a := range apps {
		if a.HasAlias(q) {
			return a.Clone(), true
		}
	}
	for _, a := range apps {
		if strings.Contains(strings.ToLower(a.Name), q) {
			return a.Clone(), true
		}
	}
	return types.AppDescriptor{}, false
}

// ListAll returns a copy of every descriptor in the current snapshot.
func (m *Manager) ListAll() []types.AppDescriptor {
	apps := m.current.Load().apps
	out := make([]types.AppDescriptor, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.Clone())
	}
	return out
}

// ListByCategory filters the current snapshot by category.
func (m *Manager) ListByCategory(category types.Category) []types.AppDescriptor {
	var out []types.AppDescriptor
	for _, a := range m.current.Load().apps {
		if a.Category == category {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Statistics summarizes the current snapshot.
func (m *Manager) Statistics() types.RegistryStats {
	snap := m.current.Load()

	stats := types.RegistryStats{ByCategory: make(map[string]int)}
	for _, a := range snap.apps {
		stats.Total++
		if a.IsSystemApp {
			stats.SystemCount++
		} else {
			stats.UserCount++
		}
		stats.ByCategory[string(a.Category)]++
	}
	if !snap.updatedAt.IsZero() {
		t := snap.updatedAt
		stats.LastUpdated = &t
	}
	return stats
}

// readStore loads the persisted descriptor array. The document's mod time
// stands in for the last-updated timestamp.
func (m *Manager) readStore() ([]types.AppDescriptor, time.Time, error) {
	data, err := os.ReadFile(m.storePath)
	if err != nil {
		return nil, time.Time{}, err
	}

	var apps []types.AppDescriptor
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode %s: %w", m.storePath, err)
	}

	updatedAt := time.Now().UTC()
	if info, err := os.Stat(m.storePath); err == nil {
		updatedAt = info.ModTime().UTC()
	}
	return apps, updatedAt, nil
}

// writeStore rewrites the document wholesale via a temp file and rename so a
// crash mid-write never leaves a truncated registry behind.
func (m *Manager) writeStore(apps []types.AppDescriptor) error {
	if apps == nil {
		apps = []types.AppDescriptor{}
	}
	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(m.storePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := m.storePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.storePath)
}
