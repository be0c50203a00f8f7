package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
)

var (
	// ErrInvalidSort is returned for a sort key outside the allow-list.
	ErrInvalidSort = errors.New("repository: sort key not allowed")
	// ErrInvalidLimit is returned for a page size outside the allowed range.
	ErrInvalidLimit = errors.New("repository: limit out of range")
)

// insertBatchSize bounds the rows per INSERT so the statement stays under
// the bind parameter limits of both SQLite and Postgres.
const insertBatchSize = 200

// replaceTable deletes every row of table and inserts rows, all in one
// transaction. A reader sees either the old snapshot or the new one.
func replaceTable[T any](ctx context.Context, d *db.DB, table, insert string, rows []T) (err error) {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err = tx.NamedExecContext(ctx, insert, rows[start:end]); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", table, start, end-1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
