package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rupeehall/wallet-engine/internal/repos/accounts"
)

func (r *accountsRepo) Create(tx *sql.Tx, key string) error {
	_, err := tx.Exec(`
		INSERT INTO accounts (account_key, balance)
		VALUES ($1, 0)
	`, key)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return accounts.ErrAlreadyExists
		}

		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

func (r *accountsRepo) Exists(tx *sql.Tx, key string) error {
	var exists bool

	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM accounts WHERE account_key = $1)
	`, key).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}

	if !exists {
		return accounts.ErrNotFound
	}

	return nil
}
