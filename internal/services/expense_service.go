package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/khatabook/backend/internal/models"
	"github.com/khatabook/backend/internal/storage"
)

// ExpenseService keeps the standalone expense log. Aggregates are re-derived
// from scratch on every change; there is no incremental bookkeeping to drift.
type ExpenseService struct {
	mu       sync.RWMutex
	expenses []models.StandaloneExpense
	summary  models.ExpenseSummary
	store    storage.Store
	log      zerolog.Logger
}

func NewExpenseService(ctx context.Context, store storage.Store, log zerolog.Logger) (*ExpenseService, error) {
	s := &ExpenseService{store: store, log: log}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ExpenseService) Reload(ctx context.Context) error {
	expenses, err := s.store.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	s.mu.Lock()
	s.expenses = expenses
	s.summary = deriveSummary(expenses)
	s.mu.Unlock()

	s.log.Info().Int("count", len(expenses)).Msg("expenses loaded")
	return nil
}

func (s *ExpenseService) AddExpense(ctx context.Context, description string, amount decimal.Decimal, date time.Time) (models.StandaloneExpense, error) {
	if amount.Sign() <= 0 {
		return models.StandaloneExpense{}, fmt.Errorf("%w: expense amount must be positive", ErrInvalidAmount)
	}

	expense := models.StandaloneExpense{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = append(s.expenses, expense)
	s.summary = deriveSummary(s.expenses)

	s.log.Info().Str("expenseId", expense.ID).Str("amount", amount.String()).Msg("standalone expense added")
	return expense, s.persist(ctx)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			s.summary = deriveSummary(s.expenses)
			s.log.Info().Str("expenseId", id).Msg("standalone expense deleted")
			return s.persist(ctx)
		}
	}
	return ErrExpenseNotFound
}

func (s *ExpenseService) ListExpenses() []models.StandaloneExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StandaloneExpense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *ExpenseService) Summary() models.ExpenseSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := models.ExpenseSummary{
		Total:         s.summary.Total,
		MonthlyTotals: make(map[string]decimal.Decimal, len(s.summary.MonthlyTotals)),
		Monthly:       make(map[string][]models.StandaloneExpense, len(s.summary.Monthly)),
	}
	for month, total := range s.summary.MonthlyTotals {
		out.MonthlyTotals[month] = total
	}
	for month, entries := range s.summary.Monthly {
		cp := make([]models.StandaloneExpense, len(entries))
		copy(cp, entries)
		out.Monthly[month] = cp
	}
	return out
}

func (s *ExpenseService) persist(ctx context.Context) error {
	if err := s.store.SaveExpenses(ctx, s.expenses); err != nil {
		s.log.Error().Err(err).Msg("expense save failed")
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

func deriveSummary(expenses []models.StandaloneExpense) models.ExpenseSummary {
	summary := models.ExpenseSummary{
		Total:         decimal.Zero,
		MonthlyTotals: map[string]decimal.Decimal{},
		Monthly:       map[string][]models.StandaloneExpense{},
	}
	for _, e := range expenses {
		month := e.MonthLabel()
		summary.Monthly[month] = append(summary.Monthly[month], e)
		summary.MonthlyTotals[month] = summary.MonthlyTotals[month].Add(e.Amount)
		summary.Total = summary.Total.Add(e.Amount)
	}
	return summary
}
