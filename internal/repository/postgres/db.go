// Package postgres implements the repositories against the hosted relational backend.
//
// The schema is consumed, not owned: events with event_links and agenda_items child
// tables, speakers and talk_proposals. Multi-statement writes are not wrapped in a
// transaction; a failure part way through leaves the earlier statements applied.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"communityhub/internal/domain"

	_ "github.com/lib/pq"
)

// Open connects to dsn and checks the connection. An empty dsn is a configuration error.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL: %w", domain.ErrMissingConfig)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}

// nullString stores "" as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// clockTime trims a stored time of day ("19:00:00") to HH:MM.
func clockTime(s string) string {
	if len(s) > 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}

// calendarDate trims a stored date or timestamp to YYYY-MM-DD.
func calendarDate(s string) string {
	if len(s) > 10 && s[4] == '-' {
		return s[:10]
	}
	return s
}
