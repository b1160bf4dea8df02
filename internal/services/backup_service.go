package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/khatabook/backend/internal/models"
	"github.com/khatabook/backend/internal/storage"
)

// exportVersion marks the export payload format.
const exportVersion = "1.0.0"

// ExportPayload is the full-device export: everything needed to rebuild the
// app's state on another device.
type ExportPayload struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Data      struct {
		Khatas   []models.Khata             `json:"khatas"`
		Expenses []models.StandaloneExpense `json:"expenses"`
		Theme    string                     `json:"theme"`
		Language string                     `json:"language"`
	} `json:"data"`
}

// BackupInfo reports whether a backup snapshot exists and when it was taken.
type BackupInfo struct {
	Exists    bool  `json:"exists"`
	Timestamp int64 `json:"timestamp,omitempty"`
}

// BackupService snapshots and restores the primary collections. It works
// against the store directly: restore overwrites the primary keys, after
// which the owning services reload their snapshots.
type BackupService struct {
	store storage.Store
	prefs *PreferencesService
	log   zerolog.Logger
}

func NewBackupService(store storage.Store, prefs *PreferencesService, log zerolog.Logger) *BackupService {
	return &BackupService{store: store, prefs: prefs, log: log}
}

// CreateBackup copies the khatas and expenses keys into the backup keys.
func (s *BackupService) CreateBackup(ctx context.Context) (BackupInfo, error) {
	khatas, err := s.store.LoadKhatas(ctx)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("load khatas: %w", err)
	}
	expenses, err := s.store.LoadExpenses(ctx)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("load expenses: %w", err)
	}

	b := &storage.Backup{
		Khatas:    khatas,
		Expenses:  expenses,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.store.SaveBackup(ctx, b); err != nil {
		return BackupInfo{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.log.Info().Int("khatas", len(khatas)).Int("expenses", len(expenses)).Msg("backup created")
	return BackupInfo{Exists: true, Timestamp: b.Timestamp}, nil
}

// RestoreBackup overwrites the primary keys with the backup snapshot.
// Callers must reload any in-memory services afterwards.
func (s *BackupService) RestoreBackup(ctx context.Context) error {
	b, err := s.store.LoadBackup(ctx)
	if err != nil {
		return fmt.Errorf("load backup: %w", err)
	}
	if b == nil {
		return ErrNoBackup
	}

	if err := s.store.SaveKhatas(ctx, b.Khatas); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := s.store.SaveExpenses(ctx, b.Expenses); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.log.Info().Int64("timestamp", b.Timestamp).Msg("backup restored")
	return nil
}

// Info reports on the stored backup without touching it.
func (s *BackupService) Info(ctx context.Context) (BackupInfo, error) {
	b, err := s.store.LoadBackup(ctx)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("load backup: %w", err)
	}
	if b == nil {
		return BackupInfo{Exists: false}, nil
	}
	return BackupInfo{Exists: true, Timestamp: b.Timestamp}, nil
}

// ClearBackup drops the backup keys.
func (s *BackupService) ClearBackup(ctx context.Context) error {
	if err := s.store.ClearBackup(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.log.Info().Msg("backup cleared")
	return nil
}

// Export assembles the versioned full-data payload.
func (s *BackupService) Export(ctx context.Context) (ExportPayload, error) {
	payload := ExportPayload{
		Version:   exportVersion,
		Timestamp: time.Now().UnixMilli(),
	}

	khatas, err := s.store.LoadKhatas(ctx)
	if err != nil {
		return ExportPayload{}, fmt.Errorf("load khatas: %w", err)
	}
	expenses, err := s.store.LoadExpenses(ctx)
	if err != nil {
		return ExportPayload{}, fmt.Errorf("load expenses: %w", err)
	}
	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return ExportPayload{}, err
	}

	payload.Data.Khatas = khatas
	payload.Data.Expenses = expenses
	payload.Data.Theme = prefs.Theme
	payload.Data.Language = prefs.Language
	return payload, nil
}

// Import overwrites the primary collections with an export payload produced on
// another device. The current state is snapshotted into the backup keys first,
// so a bad transfer can be undone with RestoreBackup. Callers must reload any
// in-memory services afterwards.
func (s *BackupService) Import(ctx context.Context, payload ExportPayload) error {
	if payload.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidImport)
	}
	if payload.Data.Khatas == nil && payload.Data.Expenses == nil {
		return fmt.Errorf("%w: missing data", ErrInvalidImport)
	}

	if _, err := s.CreateBackup(ctx); err != nil {
		return err
	}

	khatas := payload.Data.Khatas
	if khatas == nil {
		khatas = []models.Khata{}
	}
	expenses := payload.Data.Expenses
	if expenses == nil {
		expenses = []models.StandaloneExpense{}
	}

	if err := s.store.SaveKhatas(ctx, khatas); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := s.store.SaveExpenses(ctx, expenses); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if payload.Data.Theme != "" {
		if err := s.store.SetPreference(ctx, storage.KeyTheme, payload.Data.Theme); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
	}
	if payload.Data.Language != "" {
		if err := s.store.SetPreference(ctx, storage.KeyLanguage, payload.Data.Language); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
	}

	s.log.Info().Str("version", payload.Version).
		Int("khatas", len(khatas)).Int("expenses", len(expenses)).
		Msg("data imported")
	return nil
}

// ExportQR renders the export payload as a QR code and returns the PNG
// base64-encoded, ready to embed in a data URI. Large ledgers can exceed QR
// capacity; the error from qrcode.New surfaces that.
func (s *BackupService) ExportQR(ctx context.Context) (string, error) {
	payload, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("generate qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", fmt.Errorf("encode qr png: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
