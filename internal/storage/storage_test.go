package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrack/internal/domain"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return Open(path, zerolog.Nop()), path
}

func TestReadMissingKeyReturnsFalse(t *testing.T) {
	s, _ := testStore(t)

	var v string
	assert.False(t, s.Read("nope", &v))
	assert.Empty(t, v)
}

func TestWriteThenReadSameSession(t *testing.T) {
	s, _ := testStore(t)

	s.Write("theme", domain.ThemeDark)

	var mode domain.ThemeMode
	require.True(t, s.Read("theme", &mode))
	assert.Equal(t, domain.ThemeDark, mode)
}

func TestRoundTripThroughFreshInstance(t *testing.T) {
	s, path := testStore(t)

	activities := []domain.Activity{
		{ID: "1", Date: "2026-08-01T10:00:00Z", TypeID: "car", Quantity: 12.5, Notes: "commute"},
		{ID: "2", Date: "2026-08-02", IsCustom: true, CustomName: "Compost", CustomUnit: "kg", CustomCarbonPerUnit: -0.1, Quantity: 3},
	}
	s.Write("activities", activities)
	s.Write("menuCollapsed", true)

	fresh := Open(path, zerolog.Nop())

	var got []domain.Activity
	require.True(t, fresh.Read("activities", &got))
	assert.Equal(t, activities, got)

	var collapsed bool
	require.True(t, fresh.Read("menuCollapsed", &collapsed))
	assert.True(t, collapsed)
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := Open(path, zerolog.Nop())
	var v string
	assert.False(t, s.Read("anything", &v))
}

func TestCorruptValueFallsBackPerKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","menuCollapsed":"not-a-bool"}`), 0644))

	s := Open(path, zerolog.Nop())

	var mode domain.ThemeMode
	require.True(t, s.Read("theme", &mode))
	assert.Equal(t, domain.ThemeDark, mode)

	var collapsed bool
	assert.False(t, s.Read("menuCollapsed", &collapsed), "corrupt value should yield the fallback")
	assert.False(t, collapsed)
}

func TestWriteFailureStillAdvancesMemory(t *testing.T) {
	// Point the store file at a path that cannot be created.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	s := Open(filepath.Join(blocker, "store.json"), zerolog.Nop())
	s.Write("theme", domain.ThemeLight)

	var mode domain.ThemeMode
	require.True(t, s.Read("theme", &mode), "in-memory mirror must advance even when persisting fails")
	assert.Equal(t, domain.ThemeLight, mode)
}

func TestWatchReportsChangedKey(t *testing.T) {
	s, _ := testStore(t)

	var keys []string
	s.Watch(func(key string) { keys = append(keys, key) })

	s.Write("theme", domain.ThemeDark)
	s.Write("colorScheme", domain.SchemeGreen)

	assert.Equal(t, []string{"theme", "colorScheme"}, keys)
}
