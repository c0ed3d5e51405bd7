// Package sqlite registers the pure-Go SQLite driver under the
// "sqlite3" name with sane connection defaults for concurrent use.
package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

type sqliteDriver struct {
	sqlite.Driver
}

func (d sqliteDriver) Open(name string) (driver.Conn, error) {
	return d.Driver.Open(withDefaults(name))
}

// withDefaults appends a busy timeout and foreign-key enforcement unless the
// DSN already carries its own pragmas.
func withDefaults(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)"
}

func init() {
	sql.Register("sqlite3", sqliteDriver{})
}
