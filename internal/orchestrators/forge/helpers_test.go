package forge_test

import (
	"sync"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/testutils/builders"
)

// stubDrafter drafts builder runs and records the requested player counts
type stubDrafter struct {
	mu     sync.Mutex
	counts []int
	err    error
}

func (d *stubDrafter) GenerateRun(playerCount int) (entities.RunResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return entities.RunResult{}, d.err
	}
	if playerCount < 0 {
		return entities.RunResult{}, errors.InvalidArgument("negative player count")
	}
	d.counts = append(d.counts, playerCount)
	return builders.NewSessionBuilder().WithPlayers(playerCount).Build().CurrentRun, nil
}

func (d *stubDrafter) Counts() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.counts...)
}
