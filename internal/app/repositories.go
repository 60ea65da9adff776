package app

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/squad-builder/internal/config"
	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/riskibarqy/squad-builder/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	players    player.Repository
	formations formation.Repository
	builds     idealbuild.Repository
	close      func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repos, err = newPostgresRepositories(ctx, cfg, logger)
	default:
		repos = newMemoryRepositories(cfg, logger)
	}
	if err != nil {
		return repositories{}, err
	}

	if cfg.CacheEnabled {
		repos.players = cache.NewPlayerRepository(repos.players, cfg.CacheTTL)
		repos.formations = cache.NewFormationRepository(repos.formations, cfg.CacheTTL)
		repos.builds = cache.NewIdealBuildRepository(repos.builds, cfg.CacheTTL)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}
	return repos, nil
}

func newMemoryRepositories(cfg config.Config, logger *logging.Logger) repositories {
	var (
		players    []player.Player
		formations []formation.Formation
		builds     []idealbuild.IdealBuild
	)
	if cfg.SeedSampleData {
		players = memory.SeedPlayers()
		formations = memory.SeedFormations()
		builds = memory.SeedIdealBuilds()
	}
	logger.Info("using in-memory storage", "seeded", cfg.SeedSampleData)

	return repositories{
		players:    memory.NewPlayerRepository(players),
		formations: memory.NewFormationRepository(formations),
		builds:     memory.NewIdealBuildRepository(builds),
		close:      func() error { return nil },
	}
}

func newPostgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}

	breaker := resilience.NewCircuitBreaker(cfg.DBCircuit)
	players := postgres.NewPlayerRepository(db, breaker)
	formations := postgres.NewFormationRepository(db, breaker)
	builds := postgres.NewIdealBuildRepository(db, breaker)

	if cfg.SeedSampleData {
		if err := postgres.BootstrapSeed(ctx, db, players, formations, builds); err != nil {
			_ = db.Close()
			return repositories{}, crerr.Wrap(err, "bootstrap seed")
		}
	}
	logger.Info("using postgres storage",
		"db", redactDBURL(cfg.DBURL),
		"circuit_enabled", cfg.DBCircuit.Enabled,
		"seeded", cfg.SeedSampleData,
	)

	return repositories{
		players:    players,
		formations: formations,
		builds:     builds,
		close:      db.Close,
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
		otelsql.WithAttributes(attribute.String("service.component", "repository")),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}
	return db, nil
}
