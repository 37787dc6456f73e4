// Package cache memoizes whole-run analysis results keyed by the resolved
// file set. Invalidation is purely time-based: an entry older than the TTL
// is treated as absent even if the underlying files are unchanged, and a
// fresh entry is served even if they changed moments ago. That trade-off is
// intentional; content-based invalidation is out of scope.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// DefaultTTL is how long a cached result stays valid.
const DefaultTTL = time.Hour

// diskEntryExt is the suffix of persisted entries.
const diskEntryExt = ".json.lz4"

// entry is one cached result with its storage time.
type entry struct {
	StoredAt time.Time              `json:"stored_at"`
	Result   analyze.AnalysisResult `json:"result"`
}

// Manager is the run-result cache. It is safe for concurrent use; the
// orchestrator reads it once at run start and writes it once at run end.
type Manager struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	dir     string
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithDir enables LZ4-compressed persistence of entries under dir, so
// results survive process restarts within the TTL window.
func WithDir(dir string) Option {
	return func(m *Manager) { m.dir = dir }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager with a one hour TTL unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Key derives the cache key for a resolved file set. The list is sorted
// first, so key equality depends only on set membership.
func Key(files []string) string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	sum := sha1.Sum([]byte(strings.Join(sorted, "\n")))

	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for key if one exists and is younger than
// the TTL. Expired entries are dropped.
func (m *Manager) Get(key string) (*analyze.AnalysisResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok && m.dir != "" {
		e, ok = m.loadFromDisk(key)
	}

	if !ok {
		return nil, false
	}

	if m.now().Sub(e.StoredAt) > m.ttl {
		delete(m.entries, key)
		m.removeFromDisk(key)

		return nil, false
	}

	result := e.Result

	return &result, true
}

// Set stores a result under key, stamping it with the current time.
func (m *Manager) Set(key string, result analyze.AnalysisResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{StoredAt: m.now(), Result: result}
	m.entries[key] = e

	if m.dir != "" {
		// Persistence is best-effort; the memory entry still serves.
		_ = m.storeToDisk(key, e)
	}
}

// Clear drops every entry, in memory and on disk.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)

	if m.dir == "" {
		return
	}

	matches, err := filepath.Glob(filepath.Join(m.dir, "*"+diskEntryExt))
	if err != nil {
		return
	}

	for _, match := range matches {
		_ = os.Remove(match)
	}
}

// storeToDisk writes one entry as LZ4-compressed JSON.
func (m *Manager) storeToDisk(key string, e entry) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	f, err := os.Create(m.entryPath(key))
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer f.Close()

	zw := lz4.NewWriter(f)

	if err := json.NewEncoder(zw).Encode(e); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush cache entry: %w", err)
	}

	return nil
}

// loadFromDisk reads a persisted entry; a missing or corrupt file is a miss.
func (m *Manager) loadFromDisk(key string) (entry, bool) {
	f, err := os.Open(m.entryPath(key))
	if err != nil {
		return entry{}, false
	}
	defer f.Close()

	var e entry
	if err := json.NewDecoder(lz4.NewReader(f)).Decode(&e); err != nil {
		return entry{}, false
	}

	m.entries[key] = e

	return e, true
}

func (m *Manager) removeFromDisk(key string) {
	if m.dir != "" {
		_ = os.Remove(m.entryPath(key))
	}
}

func (m *Manager) entryPath(key string) string {
	return filepath.Join(m.dir, key+diskEntryExt)
}
