package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rupeehall/wallet-engine/internal/infra/metrics"
	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

// PlaceBet debits the stake and appends a pending ledger record as one atomic
// unit, returning the record's sequence token.
//
// Flow, all under the account row lock:
//
// 1) Validate game and stake bounds.
// 2) Guarded debit (insufficient funds rejects).
// 3) Append pending record; a pending bet for the same game rejects with
// bets.ErrBetAlreadyActive via the partial unique index.
func (s *Service) PlaceBet(ctx context.Context, key, gameName string, betAmount int64) (int64, error) {
	game, ok := lookupGame(gameName)
	if !ok {
		return 0, ErrUnknownGame
	}

	if betAmount < game.MinBet || betAmount > game.MaxBet {
		return 0, ErrInvalidAmount
	}

	var sequence int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.accounts.LockAndGetBalance(tx, key)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		err = s.accounts.Debit(tx, key, betAmount)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		sequence, err = s.bets.InsertPending(tx, key, gameName, betAmount)
		if err != nil {
			return fmt.Errorf("append pending bet: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("place bet: %w", err)
	}

	metrics.BetsPlacedTotal.WithLabelValues(gameName).Inc()

	return sequence, nil
}

// ResolveBet settles the pending bet for the game: marks it win or loss and
// credits winnings on a win, as one atomic unit.
//
// The caller supplies outcome and winnings (the observed contract), so the
// engine validates them: a loss carries zero winnings, a win at most
// betAmount times the game's payout multiplier.
func (s *Service) ResolveBet(ctx context.Context, key, gameName string, outcome bets.Outcome, winnings int64) error {
	game, ok := lookupGame(gameName)
	if !ok {
		return ErrUnknownGame
	}

	switch outcome {
	case bets.OutcomeWin, bets.OutcomeLoss:
	default:
		return ErrInvalidOutcome
	}

	if winnings < 0 {
		return ErrInvalidWinnings
	}

	if outcome == bets.OutcomeLoss && winnings != 0 {
		return ErrInvalidWinnings
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.accounts.LockAndGetBalance(tx, key)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		bet, err := s.bets.LockPending(tx, key, gameName)
		if err != nil {
			if errors.Is(err, bets.ErrNoActiveBet) {
				return s.classifyMissingPending(tx, key, gameName)
			}

			return fmt.Errorf("lock pending bet: %w", err)
		}

		if outcome == bets.OutcomeWin && winnings > bet.BetAmount*game.PayoutMultiplier {
			return ErrInvalidWinnings
		}

		err = s.bets.Resolve(tx, key, bet.Sequence, outcome, winnings)
		if err != nil {
			return fmt.Errorf("mark resolved: %w", err)
		}

		if outcome == bets.OutcomeWin && winnings > 0 {
			err = s.accounts.Credit(tx, key, winnings)
			if err != nil {
				return fmt.Errorf("credit winnings: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("resolve bet: %w", err)
	}

	metrics.BetsSettledTotal.WithLabelValues(gameName, string(outcome)).Inc()

	return nil
}

// classifyMissingPending distinguishes a double resolution from a resolution
// with no placement: if the game's latest bet exists and is settled, the
// caller is resolving it again.
func (s *Service) classifyMissingPending(tx *sql.Tx, key, gameName string) error {
	latest, err := s.bets.LatestByGame(tx, key, gameName)
	if err != nil {
		if errors.Is(err, bets.ErrNoActiveBet) {
			return bets.ErrNoActiveBet
		}

		return fmt.Errorf("latest bet by game: %w", err)
	}

	if latest.Outcome != bets.OutcomePending {
		return bets.ErrAlreadyResolved
	}

	return bets.ErrNoActiveBet
}
