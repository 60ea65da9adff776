package app

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/squad-builder/internal/config"
	"github.com/riskibarqy/squad-builder/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/squad-builder/internal/platform/id"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/riskibarqy/squad-builder/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned close
// function releases storage resources and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, crerr.New("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	playerSvc := usecase.NewPlayerService(
		repos.players,
		repos.builds,
		ids,
		cfg.ScoringWorkers,
		cfg.LiveFormTTL,
		logger.Named("usecase.player"),
	)
	idealBuildSvc := usecase.NewIdealBuildService(repos.builds, ids, logger.Named("usecase.idealbuild"))
	formationSvc := usecase.NewFormationService(repos.formations, ids, logger.Named("usecase.formation"))
	lineupSvc := usecase.NewLineupService(
		repos.players,
		repos.formations,
		repos.builds,
		cfg.LiveFormTTL,
		logger.Named("usecase.lineup"),
	)
	backupSvc := usecase.NewBackupService(repos.players, repos.formations, repos.builds, logger.Named("usecase.backup"))

	handler := httpapi.NewHandler(playerSvc, idealBuildSvc, formationSvc, lineupSvc, backupSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}
