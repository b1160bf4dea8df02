package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatabook/backend/internal/models"
)

func newMockedStore(t *testing.T) (*RedisStore, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return NewRedisStore(client, zerolog.Nop()), mock
}

func sampleKhatas() []models.Khata {
	return []models.Khata{{
		ID:       "k1",
		Name:     "Ali",
		Date:     "2024-01-01",
		Balance:  decimal.NewFromInt(1000),
		Expenses: []models.Expense{},
		Transactions: []models.Transaction{{
			ID:           "t1",
			Date:         "2024-01-01",
			Type:         models.TransactionAddAmount,
			Description:  "Initial amount",
			Amount:       decimal.NewFromInt(1000),
			BalanceAfter: decimal.NewFromInt(1000),
		}},
	}}
}

func TestRedisStore_Khatas(t *testing.T) {
	t.Run("missing key loads as empty collection", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectGet(KeyKhatas).RedisNil()

		khatas, err := store.LoadKhatas(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, khatas)
		assert.Empty(t, khatas)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save writes the whole collection under one key", func(t *testing.T) {
		store, mock := newMockedStore(t)
		khatas := sampleKhatas()
		data, err := json.Marshal(khatas)
		require.NoError(t, err)

		mock.ExpectSet(KeyKhatas, data, 0).SetVal("OK")

		require.NoError(t, store.SaveKhatas(context.Background(), khatas))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("round trip", func(t *testing.T) {
		store, mock := newMockedStore(t)
		khatas := sampleKhatas()
		data, err := json.Marshal(khatas)
		require.NoError(t, err)

		mock.ExpectGet(KeyKhatas).SetVal(string(data))

		loaded, err := store.LoadKhatas(context.Background())
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Ali", loaded[0].Name)
		assert.True(t, loaded[0].Balance.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, models.TransactionAddAmount, loaded[0].Transactions[0].Type)
	})

	t.Run("corrupt payload errors", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectGet(KeyKhatas).SetVal("{not json")

		_, err := store.LoadKhatas(context.Background())
		assert.Error(t, err)
	})
}

func TestRedisStore_Preferences(t *testing.T) {
	t.Run("unset preference reads as empty string", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectGet(KeyTheme).RedisNil()

		val, err := store.GetPreference(context.Background(), KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("set and get", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectSet(KeyLanguage, "ur", 0).SetVal("OK")
		mock.ExpectGet(KeyLanguage).SetVal("ur")

		require.NoError(t, store.SetPreference(context.Background(), KeyLanguage, "ur"))
		val, err := store.GetPreference(context.Background(), KeyLanguage)
		require.NoError(t, err)
		assert.Equal(t, "ur", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStore_Backup(t *testing.T) {
	t.Run("save writes all three backup keys", func(t *testing.T) {
		store, mock := newMockedStore(t)
		b := &Backup{
			Khatas:    sampleKhatas(),
			Expenses:  []models.StandaloneExpense{},
			Timestamp: 1700000000000,
		}
		khatasData, err := json.Marshal(b.Khatas)
		require.NoError(t, err)
		expensesData, err := json.Marshal(b.Expenses)
		require.NoError(t, err)

		mock.ExpectSet(KeyBackupKhatas, khatasData, 0).SetVal("OK")
		mock.ExpectSet(KeyBackupExpenses, expensesData, 0).SetVal("OK")
		mock.ExpectSet(KeyBackupTimestamp, "1700000000000", 0).SetVal("OK")

		require.NoError(t, store.SaveBackup(context.Background(), b))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("load without timestamp reports no backup", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectGet(KeyBackupTimestamp).RedisNil()

		b, err := store.LoadBackup(context.Background())
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("load round trip", func(t *testing.T) {
		store, mock := newMockedStore(t)
		khatasData, err := json.Marshal(sampleKhatas())
		require.NoError(t, err)

		mock.ExpectGet(KeyBackupTimestamp).SetVal("1700000000000")
		mock.ExpectGet(KeyBackupKhatas).SetVal(string(khatasData))
		mock.ExpectGet(KeyBackupExpenses).RedisNil()

		b, err := store.LoadBackup(context.Background())
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, int64(1700000000000), b.Timestamp)
		assert.Len(t, b.Khatas, 1)
		assert.NotNil(t, b.Expenses)
	})

	t.Run("clear deletes the backup keys", func(t *testing.T) {
		store, mock := newMockedStore(t)
		mock.ExpectDel(KeyBackupKhatas, KeyBackupExpenses, KeyBackupTimestamp).SetVal(3)

		require.NoError(t, store.ClearBackup(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
