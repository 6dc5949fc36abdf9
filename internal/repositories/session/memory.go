package session

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
)

// MemoryConfig holds the configuration for the in-memory repository
type MemoryConfig struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *MemoryConfig) Validate() error {
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record
	clock   clock.Clock
}

// NewMemoryRepository creates a process-local repository. Blobs are lost
// when the process exits.
func NewMemoryRepository(cfg *MemoryConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &memoryRepository{
		records: make(map[string]Record),
		clock:   cfg.Clock,
	}, nil
}

var _ Repository = (*memoryRepository)(nil)

func (m *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[input.Key]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.Key)
	}
	record.Blob = append([]byte(nil), record.Blob...)
	return &GetOutput{Record: &record}, nil
}

func (m *memoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Blob) == 0 {
		return nil, errors.InvalidArgument(errBlobEmpty)
	}

	record := Record{
		Key:       input.Key,
		Blob:      append([]byte(nil), input.Blob...),
		UpdatedAt: m.clock.Now(),
	}

	m.mu.Lock()
	m.records[input.Key] = record
	m.mu.Unlock()

	return &PutOutput{Record: &record}, nil
}

func (m *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.records[input.Key]
	delete(m.records, input.Key)
	return &DeleteOutput{Deleted: ok}, nil
}
