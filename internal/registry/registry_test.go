package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

type fakeScanner struct {
	apps  []types.AppDescriptor
	calls int
}

func (f *fakeScanner) Scan(context.Context, int) []types.AppDescriptor {
	f.calls++
	return f.apps
}

func notepadDescriptor() types.AppDescriptor {
	return types.AppDescriptor{
		ID:                 "system-notepad",
		Name:               "Notepad",
		ExecutableFileName: "notepad.exe",
		Category:           types.CategorySystem,
		Aliases:            []string{"notepad", "блокнот"},
		IsSystemApp:        true,
		DiscoveredAt:       time.Now().UTC(),
	}
}

func newTestManager(t *testing.T, apps []types.AppDescriptor) (*Manager, *fakeScanner) {
	t.Helper()
	sc := &fakeScanner{apps: apps}
	m := NewManager(nil, sc, filepath.Join(t.TempDir(), "applications.json"), 2)
	return m, sc
}

func TestFindPrecedence(t *testing.T) {
	code := types.AppDescriptor{
		ID: "app-1", Name: "Code",
		ExecutablePath:     `C:\Apps\Code\Code.exe`,
		ExecutableFileName: "Code.exe",
		Category:           types.CategoryDevelopment,
		Aliases:            []string{"code", "vs code"},
	}
	decoder := types.AppDescriptor{
		ID: "app-2", Name: "Super Decoder",
		ExecutablePath:     `C:\Apps\Decoder\decoder.exe`,
		ExecutableFileName: "decoder.exe",
		Category:           types.CategoryUtilities,
		Aliases:            []string{"super decoder", "decoder"},
	}
	m2, _ := newTestManager(t, []types.AppDescriptor{decoder, code, notepadDescriptor()})
	_, err := m2.RescanAndPersist(context.Background())
	require.NoError(t, err)

	// Exact name wins over the substring hit in "Super Decoder".
	got, ok := m2.Find("CODE")
	require.True(t, ok)
	assert.Equal(t, "app-1", got.ID)

	// Exact alias.
	got, ok = m2.Find("блокнот")
	require.True(t, ok)
	assert.Equal(t, "system-notepad", got.ID)

	// Substring is the last resort.
	got, ok = m2.Find("note")
	require.True(t, ok)
	assert.Equal(t, "system-notepad", got.ID)

	_, ok = m2.Find("")
	assert.False(t, ok)
	_, ok = m2.Find("   ")
	assert.False(t, ok)
	_, ok = m2.Find("zzz")
	assert.False(t, ok)
}

func TestFindReturnsCopies(t *testing.T) {
	m, _ := newTestManager(t, []types.AppDescriptor{notepadDescriptor()})
	_, err := m.RescanAndPersist(context.Background())
	require.NoError(t, err)

	got, ok := m.Find("notepad")
	require.True(t, ok)
	got.Aliases[0] = "mutated"

	again, ok := m.Find("notepad")
	require.True(t, ok)
	assert.Equal(t, "notepad", again.Aliases[0])
}

func TestInitializeSeedsSystemAppsWhenNoStore(t *testing.T) {
	m, sc := newTestManager(t, nil)
	require.NoError(t, m.Initialize(context.Background()))

	stats := m.Statistics()
	assert.Equal(t, 0, sc.calls, "Initialize must not scan")
	assert.Greater(t, stats.Total, 0)
	assert.Equal(t, stats.Total, stats.SystemCount)
	assert.Equal(t, 0, stats.UserCount)
}

func TestInitializeIdempotent(t *testing.T) {
	m, _ := newTestManager(t, nil)
	require.NoError(t, m.Initialize(context.Background()))
	before := m.Statistics()
	require.NoError(t, m.Initialize(context.Background()))
	assert.Equal(t, before.Total, m.Statistics().Total)
}

func TestRescanPersistRoundTrip(t *testing.T) {
	store := filepath.Join(t.TempDir(), "applications.json")
	apps := []types.AppDescriptor{notepadDescriptor(), {
		ID: "app-x", Name: "Example",
		ExecutablePath:     `C:\Apps\example.exe`,
		ExecutableFileName: "example.exe",
		Category:           types.CategoryOther,
		Aliases:            []string{"example"},
		DiscoveredAt:       time.Now().UTC().Truncate(time.Second),
	}}

	first := NewManager(nil, &fakeScanner{apps: apps}, store, 2)
	_, err := first.RescanAndPersist(context.Background())
	require.NoError(t, err)

	// Fresh process: a new manager reading the just-written file reproduces
	// the same listing.
	second := NewManager(nil, &fakeScanner{}, store, 2)
	require.NoError(t, second.Initialize(context.Background()))

	want := first.ListAll()
	got := second.ListAll()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].ExecutablePath, got[i].ExecutablePath)
		assert.Equal(t, want[i].Aliases, got[i].Aliases)
		assert.Equal(t, want[i].IsSystemApp, got[i].IsSystemApp)
	}
}

func TestRescanReplacesWholesale(t *testing.T) {
	m, sc := newTestManager(t, []types.AppDescriptor{notepadDescriptor()})
	_, err := m.RescanAndPersist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Statistics().Total)

	sc.apps = nil
	stats, err := m.RescanAndPersist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total, "old entries must not be merged in")
}

func TestListByCategory(t *testing.T) {
	m, _ := newTestManager(t, []types.AppDescriptor{
		notepadDescriptor(),
		{ID: "app-g", Name: "Steam", Category: types.CategoryGames, Aliases: []string{"steam"}},
	})
	_, err := m.RescanAndPersist(context.Background())
	require.NoError(t, err)

	games := m.ListByCategory(types.CategoryGames)
	require.Len(t, games, 1)
	assert.Equal(t, "Steam", games[0].Name)
	assert.Empty(t, m.ListByCategory(types.CategoryBrowser))
}

func TestStatistics(t *testing.T) {
	m, _ := newTestManager(t, []types.AppDescriptor{
		notepadDescriptor(),
		{ID: "a", Name: "A", Category: types.CategoryGames},
		{ID: "b", Name: "B", Category: types.CategoryGames},
	})
	_, err := m.RescanAndPersist(context.Background())
	require.NoError(t, err)

	stats := m.Statistics()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.SystemCount)
	assert.Equal(t, 2, stats.UserCount)
	assert.Equal(t, 2, stats.ByCategory[string(types.CategoryGames)])
	require.NotNil(t, stats.LastUpdated)
}
