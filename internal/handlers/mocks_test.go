package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/khatabook/backend/internal/models"
	"github.com/khatabook/backend/internal/storage"
)

// memStore backs handler tests. It serializes through JSON like the real
// store so saved state never aliases service-owned slices.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	backup *storage.Backup
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func loadAs[T any](s *memStore, key string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func saveAs[T any](s *memStore, key string, v []T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *memStore) LoadKhatas(context.Context) ([]models.Khata, error) {
	return loadAs[models.Khata](s, storage.KeyKhatas)
}

func (s *memStore) SaveKhatas(_ context.Context, khatas []models.Khata) error {
	return saveAs(s, storage.KeyKhatas, khatas)
}

func (s *memStore) LoadExpenses(context.Context) ([]models.StandaloneExpense, error) {
	return loadAs[models.StandaloneExpense](s, storage.KeyExpenses)
}

func (s *memStore) SaveExpenses(_ context.Context, expenses []models.StandaloneExpense) error {
	return saveAs(s, storage.KeyExpenses, expenses)
}

func (s *memStore) LoadDastiKhatas(context.Context) ([]models.DastiKhata, error) {
	return loadAs[models.DastiKhata](s, storage.KeyDastiKhatas)
}

func (s *memStore) SaveDastiKhatas(_ context.Context, dastis []models.DastiKhata) error {
	return saveAs(s, storage.KeyDastiKhatas, dastis)
}

func (s *memStore) GetPreference(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[key]), nil
}

func (s *memStore) SetPreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = []byte(value)
	return nil
}

func (s *memStore) LoadBackup(context.Context) (*storage.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backup, nil
}

func (s *memStore) SaveBackup(_ context.Context, b *storage.Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backup = b
	return nil
}

func (s *memStore) ClearBackup(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backup = nil
	return nil
}
