package database

import (
	"fmt"
	"strings"

	"quiz-practice/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

const (
	DriverOracle = "oracle"
	DriverGodror = "godror"
	DriverSQLite = "sqlite"
)

func init() {
	// go-ora takes :1 style placeholders; sqlx does not know its driver name.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// sqlitePragmas are applied by the driver to every connection it opens.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// SQLiteDSN appends the connection pragmas to a SQLite path or DSN.
func SQLiteDSN(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// NewSQLXDB opens and pings a database for one of the supported drivers.
func NewSQLXDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	logger.Get().Info("Connected to database", zap.String("driver", driver))
	return db, nil
}
