package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/syncstore/internal/models"
)

// MockProfileStore is a mock implementation of repository.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Load(ctx context.Context, name, typ string) (*models.Profile, error) {
	args := m.Called(ctx, name, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) Save(ctx context.Context, p *models.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileStore) Remove(ctx context.Context, name, typ string) error {
	args := m.Called(ctx, name, typ)
	return args.Error(0)
}

func (m *MockProfileStore) Rename(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockProfileStore) ProfileNames(ctx context.Context, typ string) ([]string, error) {
	args := m.Called(ctx, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
