// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
	sessionrepo "github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
	sessionmock "github.com/KirkDiggler/honor-run-forge/internal/repositories/session/mock"
)

// ExpectSessionGet sets up a mock expectation for loading a stored blob
func ExpectSessionGet(ctx context.Context, mockRepo *sessionmock.MockRepository, key string, blob []byte) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, sessionrepo.GetInput{Key: key}).
		Return(&sessionrepo.GetOutput{Record: &sessionrepo.Record{
			Key:       key,
			Blob:      blob,
			UpdatedAt: storeClock.Now(),
		}}, nil)
}

// ExpectSessionMissing sets up a mock expectation for a key with nothing stored
func ExpectSessionMissing(ctx context.Context, mockRepo *sessionmock.MockRepository, key string) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, sessionrepo.GetInput{Key: key}).
		Return(nil, errors.NotFoundf("session %s not found", key))
}

// ExpectSessionPut sets up a mock expectation for writing a blob and hands
// every written blob to capture
func ExpectSessionPut(mockRepo *sessionmock.MockRepository, key string, capture func([]byte)) *gomock.Call {
	return mockRepo.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input sessionrepo.PutInput) (*sessionrepo.PutOutput, error) {
			if input.Key != key {
				return nil, errors.InvalidArgumentf("unexpected key %s", input.Key)
			}
			if capture != nil {
				capture(input.Blob)
			}
			return &sessionrepo.PutOutput{Record: &sessionrepo.Record{
				Key:       input.Key,
				Blob:      input.Blob,
				UpdatedAt: storeClock.Now(),
			}}, nil
		})
}

// StoredAt is the UpdatedAt reported by every expectation in this package
var StoredAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

var storeClock clock.Clock = clock.NewFixed(StoredAt)
