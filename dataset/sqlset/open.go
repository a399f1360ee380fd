package sqlset

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// IsDatabase reports whether input refers to a database Open can handle
// rather than to a file of another kind.
func IsDatabase(input string) bool {
	return driverFor(input) != ""
}

/*
Open takes a PostgreSQL connection URL (starting with postgresql://) or
the path to an SQLite3 database file (ending in .db) and returns a handle
to the database or an error if it cannot be opened.
*/
func Open(input string) (*sql.DB, error) {
	driver := driverFor(input)
	if driver == "" {
		return nil, fmt.Errorf("opening %s: not a postgresql:// URL or .db file", input)
	}
	db, err := sql.Open(driver, input)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %v", driver, err)
	}
	return db, nil
}

func driverFor(input string) string {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		return "postgres"
	case strings.HasSuffix(input, ".db"):
		return "sqlite3"
	}
	return ""
}
