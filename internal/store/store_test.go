package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *OverrideStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "overrides.db")
	s, err := NewOverrideStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.(*OverrideStoreImpl)
}

func sampleOverride(userID, date string, hours float64) schema.CapacityOverride {
	return schema.CapacityOverride{
		Org:       "acme",
		Workspace: "eng",
		UserID:    userID,
		Date:      date,
		Hours:     hours,
	}
}

func TestOverrideStore_SetAndGet(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-03", 0)))
	require.NoError(t, s.SetOverride(ctx, sampleOverride("u2", "2024-01-02", 6)))

	overrides, err := s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, 4.0, overrides[0].Hours)
	assert.Equal(t, 0.0, overrides[1].Hours)
}

func TestOverrideStore_UpsertIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 2)))

	overrides, err := s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, overrides, 1) // One row per key, last write wins
	assert.Equal(t, 2.0, overrides[0].Hours)
}

func TestOverrideStore_ScopeFiltering(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	other := sampleOverride("u1", "2024-01-02", 8)
	other.Workspace = "design"
	require.NoError(t, s.SetOverride(ctx, other))

	overrides, err := s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "eng", overrides[0].Workspace)

	// Date bounds are inclusive on both ends.
	overrides, err = s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-02", "2024-01-02")
	require.NoError(t, err)
	assert.Len(t, overrides, 1)

	overrides, err = s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-03", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, overrides)

	// No users means no rows, not all rows.
	overrides, err = s.GetOverrides(ctx, "acme", "eng", nil, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestOverrideStore_StatusAndClear(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	require.NoError(t, s.SetOverride(ctx, sampleOverride("u2", "2024-01-02", 4)))
	other := sampleOverride("u1", "2024-01-02", 8)
	other.Workspace = "design"
	require.NoError(t, s.SetOverride(ctx, other))

	counts, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"eng": 2, "design": 1}, counts)

	require.NoError(t, s.Clear(ctx))
	counts, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestOverrideStore_NoneBackend(t *testing.T) {
	s, err := NewOverrideStore(schema.NoneBackend, "")
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, s.SetOverride(ctx, sampleOverride("u1", "2024-01-02", 4)))
	overrides, err := s.GetOverrides(ctx, "acme", "eng", []string{"u1"}, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, overrides)

	counts, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, s.Clear(ctx))
	assert.NoError(t, s.Close())
}

func TestOverrideStore_InvalidBackend(t *testing.T) {
	_, err := NewOverrideStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	sqliteStore := &OverrideStoreImpl{backend: schema.SQLiteBackend}
	assert.Equal(t, "?", sqliteStore.placeholder(3))
	assert.Equal(t, "?, ?, ?", sqliteStore.placeholderList(5, 3))

	pgStore := &OverrideStoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "$3", pgStore.placeholder(3))
	assert.Equal(t, "$5, $6, $7", pgStore.placeholderList(5, 3))
}

func TestMigrateOverrides_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest, then all the way back down.
	require.NoError(t, MigrateOverrides(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateOverrides(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateOverrides_NoneBackend(t *testing.T) {
	assert.Error(t, MigrateOverrides(schema.NoneBackend, "", -1))
}
