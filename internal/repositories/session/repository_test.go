package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
	"github.com/KirkDiggler/honor-run-forge/internal/testutils"
)

const testKey = "bg3-honor-run-v3"

// RepositoryTestSuite runs the same contract against every backend
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Fixed
	newRepo func() (session.Repository, func())
	repo    session.Repository
	cleanup func()
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func TestMemoryRepository(t *testing.T) {
	c := clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Run(t, &RepositoryTestSuite{
		clock: c,
		newRepo: func() (session.Repository, func()) {
			repo, err := session.NewMemoryRepository(&session.MemoryConfig{Clock: c})
			if err != nil {
				t.Fatal(err)
			}
			return repo, nil
		},
	})
}

func TestRedisRepository(t *testing.T) {
	c := clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Run(t, &RepositoryTestSuite{
		clock: c,
		newRepo: func() (session.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := session.NewRedisRepository(&session.RedisConfig{Client: client, Clock: c})
			if err != nil {
				t.Fatal(err)
			}
			return repo, cleanup
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	c := clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Run(t, &RepositoryTestSuite{
		clock: c,
		newRepo: func() (session.Repository, func()) {
			repo, err := session.OpenSQLiteRepository(&session.SQLiteConfig{
				Path:  filepath.Join(t.TempDir(), "forge.db"),
				Clock: c,
			})
			if err != nil {
				t.Fatal(err)
			}
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, session.GetInput{Key: testKey})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestPutThenGet() {
	put, err := s.repo.Put(s.ctx, session.PutInput{Key: testKey, Blob: []byte(`{"playerCount":2}`)})
	s.Require().NoError(err)
	s.Equal(testKey, put.Record.Key)
	s.True(s.clock.Now().Equal(put.Record.UpdatedAt))

	got, err := s.repo.Get(s.ctx, session.GetInput{Key: testKey})
	s.Require().NoError(err)
	s.Equal(`{"playerCount":2}`, string(got.Record.Blob))
	s.True(s.clock.Now().Equal(got.Record.UpdatedAt))
}

func (s *RepositoryTestSuite) TestPutReplaces() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Key: testKey, Blob: []byte(`{"v":1}`)})
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.repo.Put(s.ctx, session.PutInput{Key: testKey, Blob: []byte(`{"v":2}`)})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, session.GetInput{Key: testKey})
	s.Require().NoError(err)
	s.Equal(`{"v":2}`, string(got.Record.Blob))
	s.True(s.clock.Now().Equal(got.Record.UpdatedAt))
}

func (s *RepositoryTestSuite) TestKeysAreIndependent() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Key: testKey, Blob: []byte(`{"v":1}`)})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, session.GetInput{Key: testKey + ".backup"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Put(s.ctx, session.PutInput{Key: testKey, Blob: []byte(`{}`)})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, session.DeleteInput{Key: testKey})
	s.Require().NoError(err)
	s.True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, session.DeleteInput{Key: testKey})
	s.Require().NoError(err)
	s.False(out.Deleted)

	_, err = s.repo.Get(s.ctx, session.GetInput{Key: testKey})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	testCases := []struct {
		name string
		call func() error
	}{
		{name: "get blank key", call: func() error {
			_, err := s.repo.Get(s.ctx, session.GetInput{Key: "  "})
			return err
		}},
		{name: "put blank key", call: func() error {
			_, err := s.repo.Put(s.ctx, session.PutInput{Blob: []byte("{}")})
			return err
		}},
		{name: "put empty blob", call: func() error {
			_, err := s.repo.Put(s.ctx, session.PutInput{Key: testKey})
			return err
		}},
		{name: "delete blank key", call: func() error {
			_, err := s.repo.Delete(s.ctx, session.DeleteInput{})
			return err
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func TestRedisRepositoryCorruptRecord(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		_ = mr.Set("session:"+testKey, "not json")
	})
	defer cleanup()

	repo, err := session.NewRedisRepository(&session.RedisConfig{Client: client, Clock: clock.New()})
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.Get(context.Background(), session.GetInput{Key: testKey})
	if err == nil || errors.GetCode(err) != errors.CodeDataLoss {
		t.Fatalf("expected data loss error, got %v", err)
	}
}

func TestConstructorsValidate(t *testing.T) {
	testCases := []struct {
		name string
		call func() error
	}{
		{name: "redis nil config", call: func() error {
			_, err := session.NewRedisRepository(nil)
			return err
		}},
		{name: "redis missing client", call: func() error {
			_, err := session.NewRedisRepository(&session.RedisConfig{Clock: clock.New()})
			return err
		}},
		{name: "memory missing clock", call: func() error {
			_, err := session.NewMemoryRepository(&session.MemoryConfig{})
			return err
		}},
		{name: "sqlite missing path", call: func() error {
			_, err := session.OpenSQLiteRepository(&session.SQLiteConfig{Clock: clock.New()})
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil || !errors.IsInvalidArgument(err) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}
