package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillmatch/internal/domain/alias"
)

// queryRecord reads one row as a raw alias.Record keyed by column name, so
// whichever historical columns a row carries can be resolved by the alias table.
// It returns pgx.ErrNoRows when nothing matches.
func queryRecord(ctx context.Context, db *pgxpool.Pool, sql string, args ...any) (alias.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	return alias.Record(rec), nil
}

func recordUUID(rec alias.Record, key string) (uuid.UUID, error) {
	switch v := rec[key].(type) {
	case [16]byte:
		return uuid.UUID(v), nil
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return uuid.Nil, errors.New("column " + key + " is not a uuid")
}

func recordText(rec alias.Record, attr alias.Attribute) string {
	s, _ := alias.String(rec, attr)
	return s
}

func recordDate(rec alias.Record, attr alias.Attribute) *time.Time {
	t, ok := alias.Time(rec, attr)
	if !ok {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

func recordTime(rec alias.Record, key string) time.Time {
	t, _ := rec[key].(time.Time)
	return t
}

// nullIfEmpty keeps absent optional values as SQL NULL instead of "".
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// clearColumns nulls every legacy column so the canonical column wins on the next read.
func clearColumns(set map[string]any, columns []string) map[string]any {
	for _, c := range columns {
		set[c] = nil
	}
	return set
}
