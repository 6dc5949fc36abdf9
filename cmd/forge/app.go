package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/config"
	"github.com/KirkDiggler/honor-run-forge/internal/draft"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/orchestrators/forge"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/random"
	"github.com/KirkDiggler/honor-run-forge/internal/redis"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

// app wires one CLI invocation: a hydrated forge and its autosaver
type app struct {
	catalog  *catalog.Catalog
	roller   dice.Roller
	repo     session.Repository
	forge    forge.Service
	autosave *forge.Autosaver
	closers  []func() error
}

// newRoller returns a seeded roller, or the crypto roller for seed zero
func newRoller(c *config.Config) dice.Roller {
	if c.Seed == 0 {
		return dice.DefaultRoller
	}
	return random.NewSeeded(c.Seed)
}

// openRepository builds the configured session store
func openRepository(c *config.Config) (session.Repository, func() error, error) {
	noop := func() error { return nil }

	switch c.Store {
	case config.StoreMemory:
		repo, err := session.NewMemoryRepository(&session.MemoryConfig{Clock: clock.New()})
		return repo, noop, err

	case config.StoreRedis:
		client, err := redis.NewClientFromURL(c.RedisURL, nil)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		repo, err := session.NewRedisRepository(&session.RedisConfig{Client: client, Clock: clock.New()})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil

	case config.StoreSQLite:
		repo, err := session.OpenSQLiteRepository(&session.SQLiteConfig{Path: c.SQLitePath, Clock: clock.New()})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}

	return nil, nil, errors.InvalidArgumentf("unknown store %q", c.Store)
}

// openApp builds and hydrates the forge
func openApp(ctx context.Context) (*app, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session store")
	}

	a := &app{
		catalog: cat,
		roller:  newRoller(cfg),
		repo:    repo,
		closers: []func() error{closeRepo},
	}

	generator, err := draft.NewGenerator(&draft.Config{
		Classes:          cat.Classes(),
		Roller:           a.roller,
		TotalLevels:      entities.TotalLevels,
		OptionsPerPlayer: entities.OptionsPerPlayer,
	})
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}

	bus := events.NewBus()

	a.forge, err = forge.NewOrchestrator(&forge.Config{
		Catalog:    cat,
		Drafter:    generator,
		Roller:     a.roller,
		EventBus:   bus,
		Repository: repo,
		StorageKey: cfg.StorageKey,
	})
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}

	a.autosave, err = forge.NewAutosaver(&forge.AutosaverConfig{
		EventBus:   bus,
		Repository: repo,
		Source:     a.forge,
		StorageKey: cfg.StorageKey,
		Debounce:   cfg.AutosaveDebounce,
	})
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}

	loaded, err := a.forge.Load(ctx, &forge.LoadInput{})
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}
	if loaded.Recovered {
		slog.Warn("Saved session was partly unreadable, defaults were used for the rest", "key", cfg.StorageKey)
	}

	return a, nil
}

// close flushes the autosaver and releases the store
func (a *app) close(ctx context.Context) error {
	var first error
	if a.autosave != nil {
		if err := a.autosave.Close(ctx); err != nil {
			first = err
		}
	}
	for _, closer := range a.closers {
		if err := closer(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// withApp runs fn against a hydrated forge and always flushes afterwards
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	runErr := fn(a)
	closeErr := a.close(context.WithoutCancel(ctx))
	if runErr != nil {
		return runErr
	}
	return closeErr
}
