package services

import "errors"

// Every mutating operation reports its outcome explicitly: callers can tell
// "deleted" from "nothing matched" and a failed save from a bad request.
var (
	ErrKhataNotFound       = errors.New("khata not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDastiNotFound       = errors.New("dasti khata not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNoBackup            = errors.New("no backup data found")
	ErrInvalidImport       = errors.New("invalid import payload")

	// ErrPersistFailed wraps a store write failure. The in-memory snapshot has
	// already been updated when this is returned; the caller decides whether
	// to retry the save or warn the user.
	ErrPersistFailed = errors.New("failed to persist collection")
)
