package engine

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

var registerOnce sync.Once

// Open opens a SQLite database using the modernc.org/sqlite driver with the
// vector functions registered.
//
// For file-based databases, pass a path like "./tokens.sqlite". For
// in-memory databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) {
	registerOnce.Do(registerVectorFunctions)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
