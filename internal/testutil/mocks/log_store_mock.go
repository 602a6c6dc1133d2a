package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/syncstore/internal/models"
)

// MockLogStore is a mock implementation of repository.LogStore
type MockLogStore struct {
	mock.Mock
}

func (m *MockLogStore) Load(ctx context.Context, profileName string) (*models.SyncLog, error) {
	args := m.Called(ctx, profileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncLog), args.Error(1)
}

func (m *MockLogStore) Save(ctx context.Context, log *models.SyncLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
