package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/cache"
)

func TestKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := cache.Key([]string{"/x/a.go", "/x/b.go"})
	b := cache.Key([]string{"/x/b.go", "/x/a.go"})
	c := cache.Key([]string{"/x/b.go", "/x/c.go"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGetSet_RoundTrip(t *testing.T) {
	t.Parallel()

	m := cache.NewManager()
	key := cache.Key([]string{"/x/a.go"})

	_, ok := m.Get(key)
	assert.False(t, ok)

	m.Set(key, analyze.AnalysisResult{Summary: analyze.Summary{TotalFiles: 1}})

	got, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, 1, got.Summary.TotalFiles)
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Now()
	m := cache.NewManager(cache.WithClock(func() time.Time { return now }))

	key := cache.Key([]string{"/x/a.go"})
	m.Set(key, analyze.AnalysisResult{})

	_, ok := m.Get(key)
	assert.True(t, ok)

	now = now.Add(cache.DefaultTTL + time.Minute)

	_, ok = m.Get(key)
	assert.False(t, ok)

	// Expiry drops the entry, so it stays absent even if time rolls back.
	now = now.Add(-2 * time.Minute)

	_, ok = m.Get(key)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := cache.NewManager()
	key := cache.Key([]string{"/x/a.go"})
	m.Set(key, analyze.AnalysisResult{})
	m.Clear()

	_, ok := m.Get(key)
	assert.False(t, ok)
}

func TestDiskPersistence_SurvivesNewManager(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := cache.Key([]string{"/x/a.go"})

	first := cache.NewManager(cache.WithDir(dir))
	first.Set(key, analyze.AnalysisResult{Summary: analyze.Summary{TotalFiles: 3}})

	second := cache.NewManager(cache.WithDir(dir))

	got, ok := second.Get(key)
	require.True(t, ok)
	assert.Equal(t, 3, got.Summary.TotalFiles)
}

func TestDiskPersistence_HonorsTTL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := cache.Key([]string{"/x/a.go"})

	writer := cache.NewManager(cache.WithDir(dir))
	writer.Set(key, analyze.AnalysisResult{})

	later := time.Now().Add(cache.DefaultTTL + time.Minute)
	reader := cache.NewManager(
		cache.WithDir(dir),
		cache.WithClock(func() time.Time { return later }),
	)

	_, ok := reader.Get(key)
	assert.False(t, ok)
}
