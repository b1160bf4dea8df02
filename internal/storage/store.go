package storage

import (
	"context"

	"github.com/khatabook/backend/internal/models"
)

// Storage keys. Every collection lives under one string key as a JSON array
// and is overwritten whole on each save; there are no partial writes.
const (
	KeyKhatas          = "khatas"
	KeyExpenses        = "expenses"
	KeyDastiKhatas     = "dasti_khatas"
	KeyTheme           = "theme"
	KeyLanguage        = "language"
	KeyBackupKhatas    = "backup_khatas"
	KeyBackupExpenses  = "backup_expenses"
	KeyBackupTimestamp = "backup_timestamp"
)

// Backup is a point-in-time copy of the two primary collections.
type Backup struct {
	Khatas    []models.Khata             `json:"khatas"`
	Expenses  []models.StandaloneExpense `json:"expenses"`
	Timestamp int64                      `json:"timestamp"`
}

// Store is the persistence collaborator. Load of a missing key returns an
// empty collection, not an error.
type Store interface {
	LoadKhatas(ctx context.Context) ([]models.Khata, error)
	SaveKhatas(ctx context.Context, khatas []models.Khata) error

	LoadExpenses(ctx context.Context) ([]models.StandaloneExpense, error)
	SaveExpenses(ctx context.Context, expenses []models.StandaloneExpense) error

	LoadDastiKhatas(ctx context.Context) ([]models.DastiKhata, error)
	SaveDastiKhatas(ctx context.Context, dastis []models.DastiKhata) error

	// GetPreference returns "" when the key has never been set.
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error

	// LoadBackup returns nil when no backup exists.
	LoadBackup(ctx context.Context) (*Backup, error)
	SaveBackup(ctx context.Context, b *Backup) error
	ClearBackup(ctx context.Context) error
}
