package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/charm/internal/infrastructure/config"
)

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "charm.db")
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", DSN: path}}

	db, cleanup, err := Open(cfg)
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
	}
	defer cleanup()

	assert.Equal(t, "sqlite3", db.Driver)
	require.NoError(t, db.Ping())
	assert.FileExists(t, path)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, _, err := Open(&config.Config{Database: config.DatabaseConfig{Driver: "oracle", DSN: "x"}})
	assert.Error(t, err)
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "", sqliteFilePath(":memory:"))
	assert.Equal(t, "", sqliteFilePath("file::memory:?cache=shared"))
	assert.Equal(t, "data/charm.db", sqliteFilePath("file:data/charm.db?_fk=1"))
	assert.Equal(t, "data/charm.db", sqliteFilePath("data/charm.db"))
}
