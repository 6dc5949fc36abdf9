package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/codec"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

const legacyBlob = `{
	"playerCount": 2,
	"playerGearStates": {"1": {"act1": {"head": {"itemId": "haste-helm", "status": "unlocked"}}}},
	"activeActId": "act1"
}`

type MigrateTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    session.Repository
	catalog *catalog.Catalog
	out     bytes.Buffer
}

func (s *MigrateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.out.Reset()

	var err error
	s.repo, err = session.NewMemoryRepository(&session.MemoryConfig{Clock: clock.New()})
	s.Require().NoError(err)
	s.catalog, err = catalog.Default()
	s.Require().NoError(err)
}

func TestMigrateSuite(t *testing.T) {
	suite.Run(t, new(MigrateTestSuite))
}

func (s *MigrateTestSuite) input(dryRun bool) *migrateInput {
	return &migrateInput{
		Repository: s.repo,
		Catalog:    s.catalog,
		Key:        entities.DefaultStorageKey,
		BackupIDs:  idgen.NewSequential(entities.DefaultStorageKey + ".backup"),
		DryRun:     dryRun,
	}
}

func (s *MigrateTestSuite) get(key string) []byte {
	got, err := s.repo.Get(s.ctx, session.GetInput{Key: key})
	s.Require().NoError(err)
	return got.Record.Blob
}

func (s *MigrateTestSuite) TestRewritesLegacyBlobAndKeepsBackup() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Key: entities.DefaultStorageKey, Blob: []byte(legacyBlob)})
	s.Require().NoError(err)

	s.Require().NoError(migrateSession(s.ctx, &s.out, s.input(false)))

	backupKey := entities.DefaultStorageKey + ".backup-1"
	s.Contains(s.out.String(), "original kept under "+backupKey)
	s.Equal(legacyBlob, string(s.get(backupKey)))

	migrated := s.get(entities.DefaultStorageKey)
	s.Contains(string(migrated), `"unlockedItemIds":["haste-helm"]`)
	s.NotContains(string(migrated), `"status"`)

	helm := "haste-helm"
	out := codec.Decode(&codec.DecodeInput{Blob: migrated, Acts: s.catalog})
	s.False(out.Recovered)
	s.Equal(entities.SlotRollState{CurrentItemID: &helm, UnlockedItemIDs: []string{"haste-helm"}},
		out.Session.PlayerGearStates[1][entities.Act1]["head"])
}

func (s *MigrateTestSuite) TestDryRunWritesNothing() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Key: entities.DefaultStorageKey, Blob: []byte(legacyBlob)})
	s.Require().NoError(err)

	s.Require().NoError(migrateSession(s.ctx, &s.out, s.input(true)))

	s.Contains(s.out.String(), `"unlockedItemIds":["haste-helm"]`)
	s.Equal(legacyBlob, string(s.get(entities.DefaultStorageKey)))
	_, err = s.repo.Get(s.ctx, session.GetInput{Key: entities.DefaultStorageKey + ".backup-1"})
	s.Error(err)
}

func (s *MigrateTestSuite) TestNothingSaved() {
	s.Require().NoError(migrateSession(s.ctx, &s.out, s.input(false)))
	s.Contains(s.out.String(), "nothing saved")
}
