package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE widgets (id TEXT PRIMARY KEY);

-- +migrate Down
DROP TABLE widgets;
`

func TestExtractMigrationPart(t *testing.T) {
	t.Run("Up Section", func(t *testing.T) {
		up := extractMigrationPart(sampleMigration, "Up")
		assert.Contains(t, up, "CREATE TABLE widgets")
		assert.NotContains(t, up, "DROP TABLE")
	})

	t.Run("Down Section", func(t *testing.T) {
		down := extractMigrationPart(sampleMigration, "Down")
		assert.Contains(t, down, "DROP TABLE widgets")
		assert.NotContains(t, down, "CREATE TABLE")
	})

	t.Run("Missing Section", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart("SELECT 1;", "Up"))
	})
}

func writeMigration(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleMigration), 0o644))
	return filepath.Base(path)
}

func TestRun_Up(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	version := writeMigration(t, dir, "20250101_widgets.sql")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(version).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec("CREATE TABLE widgets").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(version).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_UpSkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	version := writeMigration(t, dir, "20250101_widgets.sql")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(version).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_Down(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	version := writeMigration(t, dir, "20250101_widgets.sql")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(version))

	mock.ExpectExec("DROP TABLE widgets").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("DELETE FROM schema_migrations").
		WithArgs(version).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, run(db, "down", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_DownNothingApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	require.NoError(t, run(db, "down", t.TempDir()))
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = run(db, "sideways", t.TempDir())
	assert.ErrorContains(t, err, "unknown mode")
}
