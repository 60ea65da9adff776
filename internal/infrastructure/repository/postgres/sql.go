package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/squad-builder/internal/platform/resilience"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// guard runs fn through the breaker. A missing row is a normal answer and
// never counts as a dependency failure.
func guard(ctx context.Context, breaker *resilience.CircuitBreaker, fn func(context.Context) error) error {
	var notFound bool
	err := breaker.Execute(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if isNotFound(err) {
			notFound = true
			return nil
		}
		return err
	})
	if err == nil && notFound {
		return sql.ErrNoRows
	}
	return err
}

// JSONB columns travel as text; lib/pq would send []byte as bytea.
func encodeJSON(value any) (string, error) {
	return sonic.MarshalString(value)
}

func decodeJSON(raw string, out any) error {
	if raw == "" {
		return nil
	}
	return sonic.UnmarshalString(raw, out)
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	out := t.UTC()
	return &out
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
