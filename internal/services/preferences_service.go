package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/khatabook/backend/internal/storage"
)

const (
	DefaultTheme    = "dark"
	DefaultLanguage = "en"
)

// Preferences are the user's theme and language choices.
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// PreferencesService reads and writes the two preference keys. Unset keys
// fall back to the defaults rather than erroring.
type PreferencesService struct {
	store storage.Store
	log   zerolog.Logger
}

func NewPreferencesService(store storage.Store, log zerolog.Logger) *PreferencesService {
	return &PreferencesService{store: store, log: log}
}

func (s *PreferencesService) Get(ctx context.Context) (Preferences, error) {
	theme, err := s.store.GetPreference(ctx, storage.KeyTheme)
	if err != nil {
		return Preferences{}, fmt.Errorf("load theme: %w", err)
	}
	language, err := s.store.GetPreference(ctx, storage.KeyLanguage)
	if err != nil {
		return Preferences{}, fmt.Errorf("load language: %w", err)
	}

	if theme == "" {
		theme = DefaultTheme
	}
	if language == "" {
		language = DefaultLanguage
	}
	return Preferences{Theme: theme, Language: language}, nil
}

func (s *PreferencesService) Set(ctx context.Context, prefs Preferences) error {
	if err := s.store.SetPreference(ctx, storage.KeyTheme, prefs.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := s.store.SetPreference(ctx, storage.KeyLanguage, prefs.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.log.Info().Str("theme", prefs.Theme).Str("language", prefs.Language).Msg("preferences saved")
	return nil
}
