package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrAlreadyExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Accounts is the balance store. Mutations run against a caller-owned
// transaction so the service can compose them into atomic settlements.
type Accounts interface {
	Create(tx *sql.Tx, key string) error
	Exists(tx *sql.Tx, key string) error
	GetBalance(ctx context.Context, key string) (int64, error)
	LockAndGetBalance(tx *sql.Tx, key string) (int64, error)
	Credit(tx *sql.Tx, key string, amount int64) error
	Debit(tx *sql.Tx, key string, amount int64) error
}
