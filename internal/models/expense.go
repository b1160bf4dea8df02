package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StandaloneExpense is an expense-log entry unrelated to any khata.
type StandaloneExpense struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthLabel is the grouping key for monthly aggregates, e.g. "January 2024".
func (e StandaloneExpense) MonthLabel() string {
	return e.Date.Format("January 2006")
}

// ExpenseSummary holds the aggregates re-derived from the expense log.
type ExpenseSummary struct {
	Total         decimal.Decimal                `json:"total"`
	MonthlyTotals map[string]decimal.Decimal     `json:"monthlyTotals"`
	Monthly       map[string][]StandaloneExpense `json:"monthly"`
}
