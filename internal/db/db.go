package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

// InMemory is the DSN for a private, process-local database.
const InMemory = ":memory:"

//go:embed schema.sql
var schema string

type DB struct {
	conn *sql.DB
}

// Open opens the record store. Each connection to ":memory:" is its own
// database, so the pool is pinned to a single connection.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}
