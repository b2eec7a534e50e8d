package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect names the SQL flavour behind a DB. The values double as database/sql driver names.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ParseDialect maps a configured driver name onto a supported dialect
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// lockClause is appended to a SELECT that must hold the row until the transaction ends.
// SQLite transactions are opened with _txlock=immediate and already hold the write lock.
func (d Dialect) lockClause() string {
	if d == DialectSQLite {
		return ""
	}
	return " FOR UPDATE"
}

// ignoreDuplicate turns an INSERT into a no-op when the row's key already exists.
// MySQL needs a column to assign to itself.
func (d Dialect) ignoreDuplicate(column string) string {
	if d == DialectMySQL {
		return " ON DUPLICATE KEY UPDATE " + column + " = " + column
	}
	return " ON CONFLICT DO NOTHING"
}

// Options configures Open
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// DB wraps a sqlx handle together with the dialect its queries target
type DB struct {
	*sqlx.DB
	dialect Dialect
}

// Open connects to the configured database and applies pool limits. It does not create tables; call Migrate.
func Open(opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.DSN) == "" {
		return nil, errors.New("database dsn is required")
	}

	dsn, err := prepareDSN(dialect, opts.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	// every connection to :memory: is a separate empty database
	if dialect == DialectSQLite && strings.Contains(opts.DSN, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

// Dialect reports the SQL flavour of the connection
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate creates every table and index that does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaFor(db.dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

func prepareDSN(dialect Dialect, dsn string) (string, error) {
	switch dialect {
	case DialectSQLite:
		// explicit settings in the DSN win; anything missing gets the default
		var params []string
		for _, pragma := range []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"} {
			name := pragma[:strings.Index(pragma, "(")]
			if name == "journal_mode" && strings.Contains(dsn, ":memory:") {
				continue
			}
			if !strings.Contains(dsn, "_pragma="+name+"(") {
				params = append(params, "_pragma="+pragma)
			}
		}
		// PlaceBidIfHighest relies on transactions taking the write lock up front
		if !strings.Contains(dsn, "_txlock=") {
			params = append(params, "_txlock=immediate")
		}
		if len(params) == 0 {
			return dsn, nil
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + strings.Join(params, "&"), nil
	case DialectMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		return cfg.FormatDSN(), nil
	default:
		return dsn, nil
	}
}

// isUniqueViolation recognises a unique/primary key conflict from any of the supported drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
