package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rupeehall/wallet-engine/internal/repos/accounts"
)

func (r *accountsRepo) GetBalance(ctx context.Context, key string) (int64, error) {
	var balance int64

	err := r.db.QueryRowContext(ctx, `
		SELECT balance
		FROM accounts
		WHERE account_key = $1
	`, key).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accounts.ErrNotFound
		}

		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// LockAndGetBalance takes the account row lock. Every mutating wallet
// operation acquires it first, which serializes mutations per account.
func (r *accountsRepo) LockAndGetBalance(tx *sql.Tx, key string) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance
		FROM accounts
		WHERE account_key = $1
		FOR UPDATE
	`, key).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accounts.ErrNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}

func (r *accountsRepo) Credit(tx *sql.Tx, key string, amount int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_key = $1
	`, key, amount)
	if err != nil {
		return fmt.Errorf("credit: %w", err)
	}

	return nil
}

func (r *accountsRepo) Debit(tx *sql.Tx, key string, amount int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2
		WHERE account_key = $1
		  AND balance >= $2
	`, key, amount)
	if err != nil {
		return fmt.Errorf("debit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientFunds
	}

	return nil
}
