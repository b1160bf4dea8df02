package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/khatabook/backend/internal/models"
	"github.com/khatabook/backend/internal/storage"
)

// DastiService keeps the lend/borrow IOU records. Nothing here touches a
// balance: the only state change besides add/delete is the paid-flag flip.
type DastiService struct {
	mu     sync.RWMutex
	dastis []models.DastiKhata
	store  storage.Store
	log    zerolog.Logger
}

func NewDastiService(ctx context.Context, store storage.Store, log zerolog.Logger) (*DastiService, error) {
	s := &DastiService{store: store, log: log}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DastiService) Reload(ctx context.Context) error {
	dastis, err := s.store.LoadDastiKhatas(ctx)
	if err != nil {
		return fmt.Errorf("load dasti khatas: %w", err)
	}

	s.mu.Lock()
	s.dastis = dastis
	s.mu.Unlock()

	s.log.Info().Int("count", len(dastis)).Msg("dasti khatas loaded")
	return nil
}

func (s *DastiService) AddDasti(ctx context.Context, name string, amount decimal.Decimal, date, description string) (models.DastiKhata, error) {
	if amount.Sign() <= 0 {
		return models.DastiKhata{}, fmt.Errorf("%w: dasti amount must be positive", ErrInvalidAmount)
	}

	dasti := models.DastiKhata{
		ID:          uuid.NewString(),
		Name:        name,
		Amount:      amount,
		Date:        date,
		IsPaid:      false,
		Description: description,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first, matching how the list is shown.
	s.dastis = append([]models.DastiKhata{dasti}, s.dastis...)

	s.log.Info().Str("dastiId", dasti.ID).Str("name", name).Msg("dasti khata added")
	return dasti, s.persist(ctx)
}

func (s *DastiService) MarkPaid(ctx context.Context, id string) (models.DastiKhata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.dastis {
		if s.dastis[i].ID == id {
			s.dastis[i].IsPaid = true
			s.log.Info().Str("dastiId", id).Msg("dasti khata marked paid")
			return s.dastis[i], s.persist(ctx)
		}
	}
	return models.DastiKhata{}, ErrDastiNotFound
}

func (s *DastiService) DeleteDasti(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.dastis {
		if s.dastis[i].ID == id {
			s.dastis = append(s.dastis[:i], s.dastis[i+1:]...)
			s.log.Info().Str("dastiId", id).Msg("dasti khata deleted")
			return s.persist(ctx)
		}
	}
	return ErrDastiNotFound
}

func (s *DastiService) ListDastis() []models.DastiKhata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DastiKhata, len(s.dastis))
	copy(out, s.dastis)
	return out
}

func (s *DastiService) persist(ctx context.Context) error {
	if err := s.store.SaveDastiKhatas(ctx, s.dastis); err != nil {
		s.log.Error().Err(err).Msg("dasti khata save failed")
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}
