package models

import "github.com/shopspring/decimal"

// DastiKhata is an informal lend/borrow IOU: one counterparty, one amount,
// one paid flag. It carries no ledger and no balance reconciliation.
type DastiKhata struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"` // counterparty
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	IsPaid      bool            `json:"isPaid"`
	Description string          `json:"description,omitempty"`
}
