package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"quiz-practice/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFS embed.FS

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Migrate applies (up) or reverts (down) every embedded migration for the
// database's driver.
func Migrate(db *sqlx.DB, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	switch db.DriverName() {
	case DriverSQLite:
		return migrateSQLite(db.DB, direction)
	case DriverOracle, DriverGodror:
		return RunOracleMigrations(db.DB, direction)
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
}

// migrateSQLite does not close m: that would close the caller's db.
func migrateSQLite(db *sql.DB, direction string) error {
	src, err := iofs.New(migrationFS, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.String("direction", direction), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

const oracleVersionTable = "schema_migrations"

// RunOracleMigrations executes the embedded Oracle scripts statement by
// statement and tracks applied versions in schema_migrations.
func RunOracleMigrations(db *sql.DB, direction string) error {
	l := logger.Get()

	if err := ensureOracleVersionTable(db); err != nil {
		return err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	suffix := "." + direction + ".sql"
	files, err := migrationFiles("migrations/oracle", suffix)
	if err != nil {
		return err
	}
	if direction == DirectionDown {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, name := range files {
		version := strings.TrimSuffix(name, suffix)
		if direction == DirectionUp && applied[version] {
			continue
		}
		if direction == DirectionDown && !applied[version] {
			continue
		}

		content, err := fs.ReadFile(migrationFS, "migrations/oracle/"+name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}

		if direction == DirectionUp {
			_, err = db.Exec("INSERT INTO "+oracleVersionTable+" (version) VALUES (:1)", version)
		} else {
			_, err = db.Exec("DELETE FROM "+oracleVersionTable+" WHERE version = :1", version)
		}
		if err != nil {
			return fmt.Errorf("could not record migration %s: %w", name, err)
		}
		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed", zap.String("direction", direction))
	return nil
}

func ensureOracleVersionTable(db *sql.DB) error {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM user_tables WHERE table_name = :1", strings.ToUpper(oracleVersionTable)).Scan(&n)
	if err != nil {
		return fmt.Errorf("could not inspect schema: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err = db.Exec("CREATE TABLE " + oracleVersionTable + " (version VARCHAR2(64) PRIMARY KEY, applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL)")
	if err != nil {
		return fmt.Errorf("could not create %s: %w", oracleVersionTable, err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("SELECT version FROM " + oracleVersionTable)
	if err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func migrationFiles(dir, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SplitStatements breaks a script into statements on trailing semicolons.
// Oracle rejects the terminator inside a single Exec, so it is dropped.
// Lines starting with "--" are ignored.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			stmts = append(stmts, current.String())
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
