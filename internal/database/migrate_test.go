package database

import (
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableNames(t *testing.T, db *sqlx.DB) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Select(&names, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('questions', 'records') ORDER BY name"))
	return names
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := NewSQLXDB(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, DirectionUp))
	assert.Equal(t, []string{"questions", "records"}, tableNames(t, db))

	require.NoError(t, Migrate(db, DirectionUp), "re-running up is a no-op")

	require.NoError(t, Migrate(db, DirectionDown))
	assert.Empty(t, tableNames(t, db))
}

func TestMigrate_UnknownDirection(t *testing.T) {
	db, err := NewSQLXDB(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(db, "sideways"))
}

func TestSplitStatements(t *testing.T) {
	script := `-- questions
CREATE TABLE questions (
    id VARCHAR2(26) PRIMARY KEY
);

CREATE INDEX idx ON questions (id);
DROP TABLE leftovers`

	stmts := SplitStatements(script)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE questions (\nid VARCHAR2(26) PRIMARY KEY\n)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx ON questions (id)", stmts[1])
	assert.Equal(t, "DROP TABLE leftovers", stmts[2])
}

func TestRunOracleMigrations_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_tables`).
		WithArgs("SCHEMA_MIGRATIONS").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"VERSION"}).AddRow("000001_create_questions"))
	mock.ExpectExec(`CREATE TABLE records`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX idx_records_answered_at`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("000002_create_records").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, RunOracleMigrations(db, DirectionUp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOracleMigrations_WideTextColumns(t *testing.T) {
	questions, err := fs.ReadFile(migrationFS, "migrations/oracle/000001_create_questions.up.sql")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^\s*answer\s+CLOB,`, string(questions))
	assert.Regexp(t, `(?m)^\s*category\s+VARCHAR2\(256 CHAR\) NOT NULL,`, string(questions))

	records, err := fs.ReadFile(migrationFS, "migrations/oracle/000002_create_records.up.sql")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^\s*user_answer\s+CLOB,`, string(records))
}
