package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"

	"campus-events/internal/database"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewConnection(database.Config{Path: filepath.Join(t.TempDir(), "repo.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations(filepath.Join("..", "database", "migrations")))
	return db.DB
}
