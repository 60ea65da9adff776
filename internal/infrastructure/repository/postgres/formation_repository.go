package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	qb "github.com/riskibarqy/squad-builder/internal/platform/querybuilder"
	"github.com/riskibarqy/squad-builder/internal/platform/resilience"
)

const formationsTable = "formations"

type FormationRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func NewFormationRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *FormationRepository {
	return &FormationRepository{db: db, breaker: breaker, now: time.Now}
}

func (r *FormationRepository) List(ctx context.Context) ([]formation.Formation, error) {
	query, args, err := qb.Select("*").From(formationsTable).
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select formations query")
	}

	var rows []formationTableModel
	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, crerr.Wrap(err, "select formations")
	}

	out := make([]formation.Formation, 0, len(rows))
	for _, row := range rows {
		item, err := formationFromRow(row)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode formation %s", row.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *FormationRepository) GetByID(ctx context.Context, formationID string) (formation.Formation, bool, error) {
	query, args, err := qb.Select("*").From(formationsTable).
		Where(
			qb.Eq("id", formationID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return formation.Formation{}, false, crerr.Wrap(err, "build get formation by id query")
	}

	var row formationTableModel
	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return formation.Formation{}, false, nil
		}
		return formation.Formation{}, false, crerr.Wrap(err, "get formation by id")
	}

	item, err := formationFromRow(row)
	if err != nil {
		return formation.Formation{}, false, crerr.Wrapf(err, "decode formation %s", row.ID)
	}
	return item, true, nil
}

func (r *FormationRepository) Upsert(ctx context.Context, item formation.Formation) error {
	row, err := formationToRow(item, r.now())
	if err != nil {
		return crerr.Wrapf(err, "encode formation %s", item.ID)
	}
	query, args, err := qb.UpsertModel(formationsTable, row, "id")
	if err != nil {
		return crerr.Wrap(err, "build upsert formation query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "upsert formation")
	}
	return nil
}

func (r *FormationRepository) Delete(ctx context.Context, formationID string) error {
	query, args, err := qb.Update(formationsTable).
		Set("deleted_at", r.now().UTC()).
		Where(
			qb.Eq("id", formationID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete formation query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "delete formation")
	}
	return nil
}
