package bets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

// InsertPending appends a pending record with the next per-account sequence.
// Callers must hold the account row lock, which makes the MAX(sequence)
// read-then-insert safe. The partial unique index on pending (account, game)
// rejects a second outstanding bet for the same game.
func (r *betsRepo) InsertPending(tx *sql.Tx, key, gameName string, betAmount int64) (int64, error) {
	var sequence int64

	err := tx.QueryRow(`
		INSERT INTO bets (account_key, sequence, game_name, bet_amount)
		SELECT $1, COALESCE(MAX(sequence), 0) + 1, $2, $3
		FROM bets
		WHERE account_key = $1
		RETURNING sequence
	`, key, gameName, betAmount).Scan(&sequence)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, bets.ErrBetAlreadyActive
		}

		return 0, fmt.Errorf("insert pending bet: %w", err)
	}

	return sequence, nil
}

func (r *betsRepo) LockPending(tx *sql.Tx, key, gameName string) (*bets.Bet, error) {
	row := tx.QueryRow(`
		SELECT account_key, sequence, game_name, bet_amount, winnings, outcome, placed_at, resolved_at
		FROM bets
		WHERE account_key = $1
		  AND game_name = $2
		  AND outcome = 'pending'
		FOR UPDATE
	`, key, gameName)

	bet, err := scanBet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bets.ErrNoActiveBet
		}

		return nil, fmt.Errorf("lock pending bet: %w", err)
	}

	return bet, nil
}

func (r *betsRepo) LatestByGame(tx *sql.Tx, key, gameName string) (*bets.Bet, error) {
	row := tx.QueryRow(`
		SELECT account_key, sequence, game_name, bet_amount, winnings, outcome, placed_at, resolved_at
		FROM bets
		WHERE account_key = $1
		  AND game_name = $2
		ORDER BY sequence DESC
		LIMIT 1
	`, key, gameName)

	bet, err := scanBet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bets.ErrNoActiveBet
		}

		return nil, fmt.Errorf("latest bet by game: %w", err)
	}

	return bet, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBet(row rowScanner) (*bets.Bet, error) {
	var b bets.Bet
	var resolvedAt sql.NullTime

	err := row.Scan(
		&b.AccountKey, &b.Sequence, &b.GameName,
		&b.BetAmount, &b.Winnings, &b.Outcome,
		&b.PlacedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		b.ResolvedAt = &resolvedAt.Time
	}

	return &b, nil
}
