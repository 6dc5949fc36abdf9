package forge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/honor-run-forge/internal/codec"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

// DefaultAutosaveDebounce batches bursts of changes into one write
const DefaultAutosaveDebounce = 250 * time.Millisecond

// SessionSource supplies the session to persist
type SessionSource interface {
	Snapshot() entities.Session
}

// AutosaverConfig holds the dependencies for an Autosaver
type AutosaverConfig struct {
	EventBus   events.EventBus
	Repository session.Repository
	Source     SessionSource
	StorageKey string
	// Debounce of zero writes synchronously on every change
	Debounce time.Duration
}

// Validate ensures all required dependencies are provided
func (c *AutosaverConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	errors.ValidateRequired("StorageKey", c.StorageKey, vb)
	if c.Debounce < 0 {
		vb.InvalidField("Debounce", "must not be negative")
	}

	return vb.Build()
}

// Autosaver writes the session after every change, but only once the
// session has been hydrated so the stored blob is never clobbered by the
// default session.
type Autosaver struct {
	eventBus   events.EventBus
	repository session.Repository
	source     SessionSource
	storageKey string
	debounce   time.Duration

	// saveMu serialises writes so an older snapshot never lands after a
	// newer one
	saveMu sync.Mutex
	// timers counts debounce callbacks that are scheduled or running
	timers sync.WaitGroup

	mu       sync.Mutex
	hydrated bool
	dirty    bool
	timer    *time.Timer
	subIDs   []string
	lastErr  error
	saves    int
}

// NewAutosaver subscribes an autosaver to the bus
func NewAutosaver(cfg *AutosaverConfig) (*Autosaver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	a := &Autosaver{
		eventBus:   cfg.EventBus,
		repository: cfg.Repository,
		source:     cfg.Source,
		storageKey: cfg.StorageKey,
		debounce:   cfg.Debounce,
	}

	a.subIDs = append(a.subIDs,
		cfg.EventBus.SubscribeFunc(EventSessionHydrated, 0, a.onHydrated),
		cfg.EventBus.SubscribeFunc(EventSessionChanged, 0, a.onChanged),
	)

	return a, nil
}

func (a *Autosaver) onHydrated(_ context.Context, _ events.Event) error {
	a.mu.Lock()
	a.hydrated = true
	a.mu.Unlock()
	return nil
}

func (a *Autosaver) onChanged(ctx context.Context, _ events.Event) error {
	a.mu.Lock()
	if !a.hydrated {
		a.mu.Unlock()
		return nil
	}
	a.dirty = true

	if a.debounce == 0 {
		a.mu.Unlock()
		return a.Flush(ctx)
	}

	a.stopTimerLocked()
	a.timers.Add(1)
	a.timer = time.AfterFunc(a.debounce, func() {
		defer a.timers.Done()
		if err := a.Flush(context.Background()); err != nil {
			slog.Warn("Autosave failed", "key", a.storageKey, "error", err)
		}
	})
	a.mu.Unlock()
	return nil
}

// stopTimerLocked cancels a scheduled debounce. A callback that already
// fired keeps its count in timers until it returns. Callers hold mu.
func (a *Autosaver) stopTimerLocked() {
	if a.timer == nil {
		return
	}
	if a.timer.Stop() {
		a.timers.Done()
	}
	a.timer = nil
}

// Flush writes a pending change immediately. It waits for a write already
// in progress and is a no-op when nothing changed since the last write.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	a.stopTimerLocked()
	if !a.dirty {
		a.mu.Unlock()
		return nil
	}
	a.dirty = false
	a.mu.Unlock()

	blob, err := codec.Encode(a.source.Snapshot())
	if err == nil {
		_, err = a.repository.Put(ctx, session.PutInput{Key: a.storageKey, Blob: blob})
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.dirty = true
		a.lastErr = err
		return errors.Wrap(err, "failed to save session")
	}
	a.lastErr = nil
	a.saves++

	slog.Debug("Saved session", "key", a.storageKey, "bytes", len(blob))
	return nil
}

// Saves returns how many writes have succeeded
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

// Err returns the error of the most recent failed write, cleared by the
// next successful one
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Close unsubscribes from the bus, flushes any pending change and waits
// for debounced writes still in flight
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	ids := a.subIDs
	a.subIDs = nil
	a.mu.Unlock()

	for _, id := range ids {
		if unsubErr := a.eventBus.Unsubscribe(id); unsubErr != nil {
			slog.Warn("Failed to unsubscribe autosaver", "subscription", id, "error", unsubErr)
		}
	}

	err := a.Flush(ctx)
	a.timers.Wait()
	return err
}
