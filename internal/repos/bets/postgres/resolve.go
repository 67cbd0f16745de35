package bets

import (
	"database/sql"
	"fmt"

	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

// Resolve transitions exactly one pending record. The outcome guard keeps a
// settled record immutable even if two resolutions race past the row lock.
func (r *betsRepo) Resolve(tx *sql.Tx, key string, sequence int64, outcome bets.Outcome, winnings int64) error {
	res, err := tx.Exec(`
		UPDATE bets
		SET outcome = $3,
		    winnings = $4,
		    resolved_at = now()
		WHERE account_key = $1
		  AND sequence = $2
		  AND outcome = 'pending'
	`, key, sequence, string(outcome), winnings)
	if err != nil {
		return fmt.Errorf("resolve bet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return bets.ErrAlreadyResolved
	}

	return nil
}
