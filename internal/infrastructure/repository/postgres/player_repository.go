package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	qb "github.com/riskibarqy/squad-builder/internal/platform/querybuilder"
	"github.com/riskibarqy/squad-builder/internal/platform/resilience"
)

const playersTable = "players"

type PlayerRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func NewPlayerRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *PlayerRepository {
	return &PlayerRepository{db: db, breaker: breaker, now: time.Now}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From(playersTable).
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, crerr.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := playerFromRow(row)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode player %s", row.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From(playersTable).
		Where(
			qb.Eq("id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build get player by id query")
	}

	var row playerTableModel
	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, "get player by id")
	}

	item, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, crerr.Wrapf(err, "decode player %s", row.ID)
	}
	return item, true, nil
}

// Upsert writes the whole aggregate; cards live in one JSONB column so a
// player and its cards change atomically.
func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	row, err := playerToRow(item, r.now())
	if err != nil {
		return crerr.Wrapf(err, "encode player %s", item.ID)
	}
	query, args, err := qb.UpsertModel(playersTable, row, "id")
	if err != nil {
		return crerr.Wrap(err, "build upsert player query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "upsert player")
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.Update(playersTable).
		Set("deleted_at", r.now().UTC()).
		Where(
			qb.Eq("id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete player query")
	}

	if err := guard(ctx, r.breaker, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return crerr.Wrap(err, "delete player")
	}
	return nil
}
