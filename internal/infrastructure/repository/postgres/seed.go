package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the sample collection into an empty database. A
// database with any player, live or soft-deleted, is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, players *PlayerRepository, formations *FormationRepository, builds *IdealBuildRepository) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return crerr.Wrap(err, "count players for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	for _, item := range memory.SeedIdealBuilds() {
		if err := builds.Upsert(ctx, item); err != nil {
			return crerr.Wrapf(err, "seed ideal build %s", item.ID)
		}
	}
	for _, item := range memory.SeedFormations() {
		if err := formations.Upsert(ctx, item); err != nil {
			return crerr.Wrapf(err, "seed formation %s", item.ID)
		}
	}
	for _, item := range memory.SeedPlayers() {
		if err := players.Upsert(ctx, item); err != nil {
			return crerr.Wrapf(err, "seed player %s", item.ID)
		}
	}
	return nil
}
