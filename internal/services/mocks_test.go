package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/khatabook/backend/internal/models"
	"github.com/khatabook/backend/internal/storage"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) LoadKhatas(ctx context.Context) ([]models.Khata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Khata), args.Error(1)
}

func (m *MockStore) SaveKhatas(ctx context.Context, khatas []models.Khata) error {
	args := m.Called(ctx, khatas)
	return args.Error(0)
}

func (m *MockStore) LoadExpenses(ctx context.Context) ([]models.StandaloneExpense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StandaloneExpense), args.Error(1)
}

func (m *MockStore) SaveExpenses(ctx context.Context, expenses []models.StandaloneExpense) error {
	args := m.Called(ctx, expenses)
	return args.Error(0)
}

func (m *MockStore) LoadDastiKhatas(ctx context.Context) ([]models.DastiKhata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DastiKhata), args.Error(1)
}

func (m *MockStore) SaveDastiKhatas(ctx context.Context, dastis []models.DastiKhata) error {
	args := m.Called(ctx, dastis)
	return args.Error(0)
}

func (m *MockStore) GetPreference(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) SetPreference(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) LoadBackup(ctx context.Context) (*storage.Backup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Backup), args.Error(1)
}

func (m *MockStore) SaveBackup(ctx context.Context, b *storage.Backup) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStore) ClearBackup(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
