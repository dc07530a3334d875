package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/shopdesk/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrUnsupportedDialect = errors.New("unsupported database type")

const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

// NormalizeDialect maps DATABASE_TYPE spellings onto a supported driver name.
func NormalizeDialect(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "sqlite", "sqlite3", "":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, kind)
	}
}

// Dialect opens the catalog database named by cfg. The catalog is read far
// more than it is written, so sqlite runs in WAL mode with a busy timeout
// that lets the seeder and readers share the file.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	kind, err := NormalizeDialect(cfg.DBType)
	if err != nil {
		return nil, err
	}
	switch kind {
	case DialectMySQL:
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)), nil
	case DialectPostgres:
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)), nil
	default:
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	}
}

// SQLiteDSN appends the catalog pragmas to path unless the caller already
// supplied a query string.
func SQLiteDSN(path string) string {
	if path == "" {
		path = "shopdesk.db"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
