package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khatabook/backend/internal/models"
)

func newTestExpenseService(t *testing.T) *ExpenseService {
	t.Helper()
	store := new(MockStore)
	store.On("LoadExpenses", mock.Anything).Return([]models.StandaloneExpense{}, nil)
	store.On("SaveExpenses", mock.Anything, mock.Anything).Return(nil)

	svc, err := NewExpenseService(context.Background(), store, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestExpenseService_AddExpense(t *testing.T) {
	svc := newTestExpenseService(t)
	ctx := context.Background()

	jan := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	expense, err := svc.AddExpense(ctx, "Groceries", decimal.NewFromInt(250), jan)
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)

	list := svc.ListExpenses()
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Description)

	summary := svc.Summary()
	assert.Equal(t, "250", summary.Total.String())
	assert.Equal(t, "250", summary.MonthlyTotals["January 2024"].String())
	assert.Len(t, summary.Monthly["January 2024"], 1)

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, "Bad", decimal.NewFromInt(-5), jan)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.AddExpense(ctx, "Bad", decimal.Zero, jan)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestExpenseService_MonthlyGrouping(t *testing.T) {
	svc := newTestExpenseService(t)
	ctx := context.Background()

	entries := []struct {
		desc   string
		amount int64
		date   time.Time
	}{
		{"Groceries", 250, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"Fuel", 100, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{"Rent", 500, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range entries {
		_, err := svc.AddExpense(ctx, e.desc, decimal.NewFromInt(e.amount), e.date)
		require.NoError(t, err)
	}

	summary := svc.Summary()
	assert.Equal(t, "850", summary.Total.String())
	assert.Equal(t, "350", summary.MonthlyTotals["January 2024"].String())
	assert.Equal(t, "500", summary.MonthlyTotals["February 2024"].String())
	assert.Len(t, summary.Monthly["January 2024"], 2)
	assert.Len(t, summary.Monthly["February 2024"], 1)

	t.Run("returned maps are copies", func(t *testing.T) {
		leaked := svc.Summary()
		leaked.MonthlyTotals["January 2024"] = decimal.NewFromInt(9999)
		delete(leaked.Monthly, "February 2024")

		again := svc.Summary()
		assert.Equal(t, "350", again.MonthlyTotals["January 2024"].String())
		assert.Len(t, again.Monthly["February 2024"], 1)
	})
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	svc := newTestExpenseService(t)
	ctx := context.Background()

	jan := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	expense, err := svc.AddExpense(ctx, "Groceries", decimal.NewFromInt(250), jan)
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, "Fuel", decimal.NewFromInt(100), jan)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(ctx, expense.ID))

	// Aggregates re-derived, not decremented.
	summary := svc.Summary()
	assert.Equal(t, "100", summary.Total.String())
	assert.Equal(t, "100", summary.MonthlyTotals["January 2024"].String())
	assert.Len(t, svc.ListExpenses(), 1)

	t.Run("unknown id", func(t *testing.T) {
		before := svc.ListExpenses()
		assert.ErrorIs(t, svc.DeleteExpense(ctx, "no-such-id"), ErrExpenseNotFound)
		assert.Equal(t, before, svc.ListExpenses())
	})
}
