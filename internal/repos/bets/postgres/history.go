package bets

import (
	"context"
	"fmt"

	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

// History returns the account's records in placement order, pending included.
// It reads committed state only, so it never observes a half-applied
// settlement.
func (r *betsRepo) History(ctx context.Context, key string) ([]bets.Bet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_key, sequence, game_name, bet_amount, winnings, outcome, placed_at, resolved_at
		FROM bets
		WHERE account_key = $1
		ORDER BY sequence ASC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []bets.Bet

	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		history = append(history, *bet)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return history, nil
}
