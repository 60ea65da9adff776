package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	qb "github.com/riskibarqy/squad-builder/internal/platform/querybuilder"
	"github.com/riskibarqy/squad-builder/internal/platform/resilience"
)

const idealBuildsTable = "ideal_builds"

type IdealBuildRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func NewIdealBuildRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *IdealBuildRepository {
	return &IdealBuildRepository{db: db, breaker: breaker, now: time.Now}
}

func (r *IdealBuildRepository) List(ctx context.Context) ([]idealbuild.IdealBuild, error) {
	query, args, err := qb.Select("*").From(idealBuildsTable).OrderBy("id").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select ideal builds query")
	}

	var rows []idealBuildTableModel
	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, crerr.Wrap(err, "select ideal builds")
	}

	out := make([]idealbuild.IdealBuild, 0, len(rows))
	for _, row := range rows {
		item, err := idealBuildFromRow(row)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode ideal build %s", row.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *IdealBuildRepository) Upsert(ctx context.Context, item idealbuild.IdealBuild) error {
	row, err := idealBuildToRow(item, r.now())
	if err != nil {
		return crerr.Wrapf(err, "encode ideal build %s", item.ID)
	}
	query, args, err := qb.UpsertModel(idealBuildsTable, row, "id")
	if err != nil {
		return crerr.Wrap(err, "build upsert ideal build query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "upsert ideal build")
	}
	return nil
}

func (r *IdealBuildRepository) Delete(ctx context.Context, buildID string) error {
	query, args, err := qb.DeleteFrom(idealBuildsTable).Where(qb.Eq("id", buildID)).ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete ideal build query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "delete ideal build")
	}
	return nil
}
