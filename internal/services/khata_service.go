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

// KhataService owns the khata collection and is its only mutation surface.
// Every operation keeps the running balance and the two per-khata lists
// mutually consistent: balance == signed sum of the transaction ledger.
//
// Mutations apply to the in-memory snapshot first, then save the whole
// collection to the store. A failed save is returned wrapped in
// ErrPersistFailed with the snapshot left updated.
type KhataService struct {
	mu     sync.RWMutex
	khatas []models.Khata
	store  storage.Store
	log    zerolog.Logger
}

// NewKhataService loads the stored collection into memory.
func NewKhataService(ctx context.Context, store storage.Store, log zerolog.Logger) (*KhataService, error) {
	s := &KhataService{store: store, log: log}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory snapshot with the stored collection. Used at
// startup and after a backup restore overwrites the primary keys.
func (s *KhataService) Reload(ctx context.Context) error {
	khatas, err := s.store.LoadKhatas(ctx)
	if err != nil {
		return fmt.Errorf("load khatas: %w", err)
	}

	s.mu.Lock()
	s.khatas = khatas
	s.mu.Unlock()

	s.log.Info().Int("count", len(khatas)).Msg("khatas loaded")
	return nil
}

// CreateKhata makes a new khata with balance = initialAmount and the seed
// ADD_AMOUNT transaction, so the new khata satisfies the balance invariant by
// construction. A zero initial amount still gets its seed transaction.
func (s *KhataService) CreateKhata(ctx context.Context, name, date string, initialAmount decimal.Decimal) (models.Khata, error) {
	khata := models.Khata{
		ID:       uuid.NewString(),
		Name:     name,
		Date:     date,
		Balance:  initialAmount,
		Expenses: []models.Expense{},
		Transactions: []models.Transaction{{
			ID:           uuid.NewString(),
			Date:         date,
			Type:         models.TransactionAddAmount,
			Description:  "Initial amount",
			Amount:       initialAmount,
			BalanceAfter: initialAmount,
		}},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.khatas = append(s.khatas, khata)

	s.log.Info().Str("khataId", khata.ID).Str("name", name).Msg("khata created")
	return khata.Clone(), s.persist(ctx)
}

// GetKhata returns a copy of one khata.
func (s *KhataService) GetKhata(khataID string) (models.Khata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.khatas {
		if s.khatas[i].ID == khataID {
			return s.khatas[i].Clone(), nil
		}
	}
	return models.Khata{}, ErrKhataNotFound
}

// ListKhatas returns a copy of the whole collection.
func (s *KhataService) ListKhatas() []models.Khata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Khata, len(s.khatas))
	for i := range s.khatas {
		out[i] = s.khatas[i].Clone()
	}
	return out
}

// RecordExpense debits a khata: appends the expense, appends the paired
// EXPENSE transaction carrying the expense's id, and drops the balance by
// amount. Amount must be strictly positive.
func (s *KhataService) RecordExpense(ctx context.Context, khataID, date, source string, amount decimal.Decimal) (models.Expense, error) {
	if amount.Sign() <= 0 {
		return models.Expense{}, fmt.Errorf("%w: expense amount must be positive", ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	khata := s.findKhata(khataID)
	if khata == nil {
		return models.Expense{}, ErrKhataNotFound
	}

	expense := models.Expense{
		ID:     uuid.NewString(),
		Date:   date,
		Source: source,
		Amount: amount,
	}

	newBalance := khata.Balance.Sub(amount)
	khata.Expenses = append(khata.Expenses, expense)
	khata.Transactions = append(khata.Transactions, models.Transaction{
		ID:           uuid.NewString(),
		Date:         date,
		Type:         models.TransactionExpense,
		Description:  source,
		Amount:       amount,
		BalanceAfter: newBalance,
		ExpenseID:    expense.ID,
	})
	khata.Balance = newBalance

	s.log.Info().Str("khataId", khataID).Str("expenseId", expense.ID).
		Str("amount", amount.String()).Str("balance", newBalance.String()).
		Msg("expense recorded")
	return expense, s.persist(ctx)
}

// RecordAddAmount credits a khata. Amount may carry either sign but not zero:
// a negative amount is a manual downward adjustment and debits the balance
// without creating an EXPENSE record.
func (s *KhataService) RecordAddAmount(ctx context.Context, khataID string, amount decimal.Decimal, description, date string) (models.Transaction, error) {
	if amount.IsZero() {
		return models.Transaction{}, fmt.Errorf("%w: amount must be non-zero", ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	khata := s.findKhata(khataID)
	if khata == nil {
		return models.Transaction{}, ErrKhataNotFound
	}

	newBalance := khata.Balance.Add(amount)
	tx := models.Transaction{
		ID:           uuid.NewString(),
		Date:         date,
		Type:         models.TransactionAddAmount,
		Description:  description,
		Amount:       amount,
		BalanceAfter: newBalance,
	}
	khata.Transactions = append(khata.Transactions, tx)
	khata.Balance = newBalance

	s.log.Info().Str("khataId", khataID).Str("txId", tx.ID).
		Str("amount", amount.String()).Str("balance", newBalance.String()).
		Msg("amount added")
	return tx, s.persist(ctx)
}

// DeleteExpense reverses one debit: the expense and the EXPENSE transaction
// whose ExpenseID points at it are removed, and the balance gets the amount
// back. BalanceAfter snapshots on surviving transactions are left as written,
// so snapshots recorded after the deleted entry go stale. That is accepted:
// BalanceAfter is a historical audit value, not a live one.
func (s *KhataService) DeleteExpense(ctx context.Context, khataID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	khata := s.findKhata(khataID)
	if khata == nil {
		return ErrKhataNotFound
	}

	idx := -1
	for i := range khata.Expenses {
		if khata.Expenses[i].ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrExpenseNotFound
	}

	amount := khata.Expenses[idx].Amount
	khata.Expenses = append(khata.Expenses[:idx], khata.Expenses[idx+1:]...)

	for i := range khata.Transactions {
		t := khata.Transactions[i]
		if t.Type == models.TransactionExpense && t.ExpenseID == expenseID {
			khata.Transactions = append(khata.Transactions[:i], khata.Transactions[i+1:]...)
			break
		}
	}

	khata.Balance = khata.Balance.Add(amount)

	s.log.Info().Str("khataId", khataID).Str("expenseId", expenseID).
		Str("balance", khata.Balance.String()).Msg("expense deleted")
	return s.persist(ctx)
}

// DeleteTransaction reverses exactly the deleted entry's signed effect.
// Deleting an EXPENSE-kind entry also removes the expense it points at;
// an ADD_AMOUNT deletion never touches the expense list.
func (s *KhataService) DeleteTransaction(ctx context.Context, khataID, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	khata := s.findKhata(khataID)
	if khata == nil {
		return ErrKhataNotFound
	}

	idx := -1
	for i := range khata.Transactions {
		if khata.Transactions[i].ID == txID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTransactionNotFound
	}

	tx := khata.Transactions[idx]
	khata.Transactions = append(khata.Transactions[:idx], khata.Transactions[idx+1:]...)
	khata.Balance = khata.Balance.Sub(tx.Signed())

	if tx.Type == models.TransactionExpense && tx.ExpenseID != "" {
		for i := range khata.Expenses {
			if khata.Expenses[i].ID == tx.ExpenseID {
				khata.Expenses = append(khata.Expenses[:i], khata.Expenses[i+1:]...)
				break
			}
		}
	}

	s.log.Info().Str("khataId", khataID).Str("txId", txID).
		Str("type", string(tx.Type)).Str("balance", khata.Balance.String()).
		Msg("transaction deleted")
	return s.persist(ctx)
}

// DeleteKhata removes a khata and everything nested in it.
func (s *KhataService) DeleteKhata(ctx context.Context, khataID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.khatas {
		if s.khatas[i].ID == khataID {
			s.khatas = append(s.khatas[:i], s.khatas[i+1:]...)
			s.log.Info().Str("khataId", khataID).Msg("khata deleted")
			return s.persist(ctx)
		}
	}
	return ErrKhataNotFound
}

// findKhata must be called with the write lock held.
func (s *KhataService) findKhata(khataID string) *models.Khata {
	for i := range s.khatas {
		if s.khatas[i].ID == khataID {
			return &s.khatas[i]
		}
	}
	return nil
}

// persist saves the whole collection. Must be called with the lock held.
func (s *KhataService) persist(ctx context.Context) error {
	if err := s.store.SaveKhatas(ctx, s.khatas); err != nil {
		s.log.Error().Err(err).Msg("khata save failed")
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}
