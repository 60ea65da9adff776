package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
)

var testNow = time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type seededRepos struct {
	players    *memory.PlayerRepository
	formations *memory.FormationRepository
	builds     *memory.IdealBuildRepository
}

func newSeededRepos() seededRepos {
	return seededRepos{
		players:    memory.NewPlayerRepository(memory.SeedPlayers()),
		formations: memory.NewFormationRepository(memory.SeedFormations()),
		builds:     memory.NewIdealBuildRepository(memory.SeedIdealBuilds()),
	}
}

func newTestPlayerService(repos seededRepos) *PlayerService {
	service := NewPlayerService(repos.players, repos.builds, &sequenceIDGenerator{}, 2, 7*24*time.Hour, logging.NewNop())
	service.now = func() time.Time { return testNow }
	return service
}
