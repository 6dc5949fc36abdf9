package gearstate_test

import (
	"reflect"
	"testing"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/testutils"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	return testutils.CreateTestCatalog(t)
}

func newTestSession(playerCount int) entities.Session {
	run := entities.RunResult{}
	for p := 1; p <= playerCount; p++ {
		run.Players = append(run.Players, entities.PlayerOptionSet{
			PlayerNumber: p,
			Options: []entities.CharacterOption{
				{ID: "opt-a"},
				{ID: "opt-b"},
			},
		})
	}
	return entities.NewSession(playerCount, run, entities.Act1)
}

func samePointer(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func strPtr(s string) *string {
	return &s
}
