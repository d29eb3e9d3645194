package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/store/sqlite"
)

const cliProfile = "3f1c1d5e-8d2a-4b7e-9c1f-2a6b5e4d3c21"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "startups.yaml")
	require.NoError(t, os.WriteFile(good, []byte("startups:\n  - id: 7\n    startupName: Acme\n  - id: 8\n    startupName: Beta Labs\n"), 0o644))

	out, err := execute(t, "catalog", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 startups")

	bad := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("startups:\n  - id: 7\n    startupName: Acme\n  - id: 7\n    startupName: Again\n"), 0o644))

	_, err = execute(t, "catalog", "check", bad)
	assert.Error(t, err)
}

func TestFavoritesListAndClear(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "portal.db")
	t.Setenv("PORTAL_CATALOG_FILE", filepath.Join(dir, "startups.yaml"))
	t.Setenv("PORTAL_STORAGE", "sqlite")
	t.Setenv("PORTAL_SQLITE_PATH", dbPath)

	now := time.Now()
	records := []domain.FavoriteRecord{
		domain.NewFavoriteRecord(domain.Startup{ID: 7, StartupName: "Acme", StartupDomain: "FinTech"}, now),
		domain.NewFavoriteRecord(domain.Startup{ID: 8, StartupName: "Old"}, now.Add(-31*domain.Day)),
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	st, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Set(t.Context(), kv.FavoritesKey(cliProfile), string(data)))
	require.NoError(t, st.Close())

	out, err := execute(t, "favorites", "list", "--profile", cliProfile)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.NotContains(t, out, "Old", "expired records are not listed")

	out, err = execute(t, "favorites", "clear", "--profile", cliProfile)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 favorites")

	out, err = execute(t, "favorites", "list", "--profile", cliProfile)
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites.")
}

func TestFavoritesRejectsBadProfile(t *testing.T) {
	_, err := execute(t, "favorites", "list", "--profile", "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	_, err = execute(t, "favorites", "list", "--profile", "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestFavoritesCanonicalizesProfile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "portal.db")
	t.Setenv("PORTAL_CATALOG_FILE", filepath.Join(dir, "startups.yaml"))
	t.Setenv("PORTAL_STORAGE", "sqlite")
	t.Setenv("PORTAL_SQLITE_PATH", dbPath)

	data, err := json.Marshal([]domain.FavoriteRecord{
		domain.NewFavoriteRecord(domain.Startup{ID: 7, StartupName: "Acme"}, time.Now()),
	})
	require.NoError(t, err)

	st, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Set(t.Context(), kv.FavoritesKey(cliProfile), string(data)))
	require.NoError(t, st.Close())

	out, err := execute(t, "favorites", "list", "--profile", strings.ToUpper(cliProfile))
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")

	out, err = execute(t, "favorites", "clear", "--profile", "{"+cliProfile+"}")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 favorites of "+cliProfile)

	st, err = sqlite.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	raw, found, err := st.Get(t.Context(), kv.FavoritesKey(cliProfile))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", raw)

	_, found, err = st.Get(t.Context(), kv.FavoritesKey("{"+cliProfile+"}"))
	require.NoError(t, err)
	assert.False(t, found, "no stray key is written")
}

type downStorage struct{}

var errDown = errors.New("connection refused")

func (downStorage) Get(context.Context, string) (string, bool, error) { return "", false, errDown }
func (downStorage) Set(context.Context, string, string) error         { return errDown }
func (downStorage) Delete(context.Context, string) error              { return errDown }
func (downStorage) Ping(context.Context) error                        { return errDown }
func (downStorage) Name() string                                      { return "down" }

func TestLoadProfileRefusesUnreachableStorage(t *testing.T) {
	_, err := loadProfile(t.Context(), downStorage{}, cliProfile)
	assert.ErrorIs(t, err, errDown)
	assert.ErrorContains(t, err, "down storage unavailable")
}
