// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database type constants
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database and verifies the connection.
// SQLite is limited to a single connection so writers are serialized by the
// database as well as by the ledger.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	var conn *sql.DB
	var err error

	switch dbType {
	case TypeSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// sqliteDSN adds the pragmas the ledger relies on unless the caller set them.
func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
