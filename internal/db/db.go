// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"

    _ "github.com/lib/pq"
)

// Connect opens and pings a Postgres connection.
func Connect(dsn string) (*sql.DB, error) {
    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }
    if err := conn.Ping(); err != nil {
        return nil, fmt.Errorf("ping database: %w", err)
    }
    return conn, nil
}
