package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/trustscore/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// driverFor returns the database/sql driver name for a backend.
func driverFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// openDB opens and pings the database for a SQL backend. multiStatements
// lets MySQL run migration files holding several statements.
func openDB(backend schema.DatabaseBackend, connStr string, multiStatements bool) (*sql.DB, error) {
	driverName := driverFor(backend)

	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = GetDBFilePath()
		}
	case schema.MySQLBackend:
		// DATETIME columns are scanned into time.Time
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MySQL connection string: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		cfg.MultiStatements = multiStatements
		connStr = cfg.FormatDSN()
	case schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, nil
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholders returns n bind parameters starting at from, in the backend's syntax.
func placeholders(backend schema.DatabaseBackend, from, n int) string {
	parts := make([]string, n)
	for i := range n {
		if backend == schema.PostgreSQLBackend {
			parts[i] = fmt.Sprintf("$%d", from+i)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime reads a time column stored by formatTime.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}
