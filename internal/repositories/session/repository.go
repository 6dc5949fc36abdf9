// Package session provides repository interface and backends for the
// persisted forge session blob
package session

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/KirkDiggler/honor-run-forge/internal/repositories/session Repository

// Record is a stored session blob
type Record struct {
	// Named slot the blob is saved under (e.g., "bg3-honor-run-v3")
	Key string `json:"key"`

	// Encoded session JSON
	Blob []byte `json:"blob"`

	// When the blob was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// GetInput defines the input for retrieving a blob
type GetInput struct {
	Key string
}

// GetOutput defines the output for retrieving a blob
type GetOutput struct {
	Record *Record
}

// PutInput defines the input for writing a blob
type PutInput struct {
	Key  string
	Blob []byte
}

// PutOutput defines the output for writing a blob
type PutOutput struct {
	Record *Record
}

// DeleteInput defines the input for removing a blob
type DeleteInput struct {
	Key string
}

// DeleteOutput defines the output for removing a blob
type DeleteOutput struct {
	// Whether a blob existed under the key
	Deleted bool
}

// Repository stores session blobs under named keys
type Repository interface {
	// Get returns NotFound when nothing is stored under the key
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put creates or replaces the blob under the key
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes the blob under the key
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errKeyEmpty  = "key cannot be empty"
	errBlobEmpty = "blob cannot be empty"
)
