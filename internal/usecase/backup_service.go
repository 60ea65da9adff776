package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

// Snapshot is the JSON backup of the whole collection. It carries no format
// version; unknown fields are ignored on import.
type Snapshot struct {
	ExportedAt  time.Time            `json:"exportedAt"`
	Players     []PlayerDocument     `json:"players"`
	Formations  []FormationDocument  `json:"formations"`
	IdealBuilds []IdealBuildDocument `json:"idealBuilds,omitempty"`
}

type ImportResult struct {
	Players     int
	Formations  int
	IdealBuilds int
}

type BackupService struct {
	playerRepo    player.Repository
	formationRepo formation.Repository
	buildRepo     idealbuild.Repository
	logger        *logging.Logger
	now           func() time.Time
}

func NewBackupService(
	playerRepo player.Repository,
	formationRepo formation.Repository,
	buildRepo idealbuild.Repository,
	logger *logging.Logger,
) *BackupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackupService{
		playerRepo:    playerRepo,
		formationRepo: formationRepo,
		buildRepo:     buildRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Export serializes players, formations and ideal builds into one JSON
// document.
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Export")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storageError("list players", err)
	}
	formations, err := s.formationRepo.List(ctx)
	if err != nil {
		return nil, storageError("list formations", err)
	}
	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return nil, storageError("list ideal builds", err)
	}

	snapshot := Snapshot{
		ExportedAt:  s.now().UTC(),
		Players:     make([]PlayerDocument, 0, len(players)),
		Formations:  make([]FormationDocument, 0, len(formations)),
		IdealBuilds: make([]IdealBuildDocument, 0, len(builds)),
	}
	for _, item := range players {
		snapshot.Players = append(snapshot.Players, NewPlayerDocument(item))
	}
	for _, item := range formations {
		snapshot.Formations = append(snapshot.Formations, NewFormationDocument(item))
	}
	for _, item := range builds {
		snapshot.IdealBuilds = append(snapshot.IdealBuilds, NewIdealBuildDocument(item))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(snapshot); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	out := append([]byte(nil), buf.B...)

	s.logger.InfoContext(ctx, "backup exported",
		"players", len(snapshot.Players),
		"formations", len(snapshot.Formations),
		"ideal_builds", len(snapshot.IdealBuilds),
		"bytes", len(out),
	)
	return out, nil
}

// Import restores a snapshot. Every record is validated before anything is
// written; existing records with the same ids are overwritten.
func (s *BackupService) Import(ctx context.Context, raw []byte) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Import")
	defer span.End()

	var snapshot Snapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return ImportResult{}, fmt.Errorf("%w: decode backup: %v", ErrInvalidInput, err)
	}

	players := make([]player.Player, 0, len(snapshot.Players))
	for _, doc := range snapshot.Players {
		item, err := doc.Player()
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: player %s: %v", ErrInvalidInput, doc.ID, err)
		}
		players = append(players, item)
	}
	formations := make([]formation.Formation, 0, len(snapshot.Formations))
	for _, doc := range snapshot.Formations {
		item, err := doc.Formation()
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: formation %s: %v", ErrInvalidInput, doc.ID, err)
		}
		formations = append(formations, item)
	}
	builds := make([]idealbuild.IdealBuild, 0, len(snapshot.IdealBuilds))
	for _, doc := range snapshot.IdealBuilds {
		item, err := doc.IdealBuild()
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: ideal build %s: %v", ErrInvalidInput, doc.ID, err)
		}
		builds = append(builds, item)
	}

	for _, item := range builds {
		if err := s.buildRepo.Upsert(ctx, item); err != nil {
			return ImportResult{}, storageError("import ideal build", err)
		}
	}
	for _, item := range formations {
		if err := s.formationRepo.Upsert(ctx, item); err != nil {
			return ImportResult{}, storageError("import formation", err)
		}
	}
	for _, item := range players {
		if err := s.playerRepo.Upsert(ctx, item); err != nil {
			return ImportResult{}, storageError("import player", err)
		}
	}

	result := ImportResult{Players: len(players), Formations: len(formations), IdealBuilds: len(builds)}
	s.logger.InfoContext(ctx, "backup imported",
		"players", result.Players,
		"formations", result.Formations,
		"ideal_builds", result.IdealBuilds,
	)
	return result, nil
}
