package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType discriminates the two balance-affecting entry kinds.
type TransactionType string

const (
	TransactionAddAmount TransactionType = "ADD_AMOUNT"
	TransactionExpense   TransactionType = "EXPENSE"
)

// Expense is a single debit against a khata's balance.
type Expense struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"` // YYYY-MM-DD
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

// Transaction is one entry in a khata's append-only ledger. BalanceAfter is the
// balance snapshot taken when the entry was applied; it is a historical audit
// value and is never recomputed when later entries are deleted.
type Transaction struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	// ExpenseID pairs an EXPENSE-kind entry with the Expense record it debited.
	// Empty on ADD_AMOUNT entries.
	ExpenseID string `json:"expenseId,omitempty"`
}

// Signed returns the transaction's contribution to the running balance:
// credits positive, debits negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Khata is a named running-balance ledger. Invariant: Balance equals the sum
// of Signed() over Transactions, starting from zero.
type Khata struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Date         string          `json:"date"` // creation date, YYYY-MM-DD
	Balance      decimal.Decimal `json:"balance"`
	Expenses     []Expense       `json:"expenses"`
	Transactions []Transaction   `json:"transactions"`
}

// TransactionSum computes the signed sum of the ledger entries.
func (k Khata) TransactionSum() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range k.Transactions {
		sum = sum.Add(t.Signed())
	}
	return sum
}

// Clone returns a deep copy safe to hand out of the owning service.
func (k Khata) Clone() Khata {
	out := k
	out.Expenses = make([]Expense, len(k.Expenses))
	copy(out.Expenses, k.Expenses)
	out.Transactions = make([]Transaction, len(k.Transactions))
	copy(out.Transactions, k.Transactions)
	return out
}
