// Package wallet implements the wallet ledger and bet-settlement engine.
//
// Every mutating operation runs inside a single DB transaction that takes the
// account row lock first, so mutations for one account are serialized while
// different accounts proceed in parallel. The transaction is also the
// rollback boundary for compound transitions: a staked debit whose ledger
// append fails is rolled back with it, never observed by a caller.
package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rupeehall/wallet-engine/internal/infra/pgutils"
	"github.com/rupeehall/wallet-engine/internal/repos/accounts"
	pgaccounts "github.com/rupeehall/wallet-engine/internal/repos/accounts/postgres"
	"github.com/rupeehall/wallet-engine/internal/repos/bets"
	pgbets "github.com/rupeehall/wallet-engine/internal/repos/bets/postgres"
)

var (
	ErrInvalidAmount   = errors.New("amount must be a positive integer")
	ErrUnknownGame     = errors.New("unknown game")
	ErrInvalidOutcome  = errors.New("outcome must be win or loss")
	ErrInvalidWinnings = errors.New("winnings inconsistent with outcome")
)

type Service struct {
	accounts accounts.Accounts
	bets     bets.Bets
	withTx   func(ctx context.Context, fn func(*sql.Tx) error) error
}

func New(db *sql.DB) *Service {
	return &Service{
		accounts: pgaccounts.New(db),
		bets:     pgbets.New(db),
		withTx: func(ctx context.Context, fn func(*sql.Tx) error) error {
			return pgutils.WithTx(ctx, db, fn)
		},
	}
}

// CreateWallet creates a zero-balance account. A repeated call for the same
// key fails with accounts.ErrAlreadyExists and never resets the balance.
func (s *Service) CreateWallet(ctx context.Context, key string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return s.accounts.Create(tx, key)
	})
	if err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}

	return nil
}

// Deposit credits the account and returns the new balance. The account must
// already exist; a missing account is not a zero-balance account.
func (s *Service) Deposit(ctx context.Context, key string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		balance, err := s.accounts.LockAndGetBalance(tx, key)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		err = s.accounts.Credit(tx, key, amount)
		if err != nil {
			return fmt.Errorf("credit: %w", err)
		}

		newBalance = balance + amount

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("deposit: %w", err)
	}

	return newBalance, nil
}

// Withdraw debits the account and returns the new balance.
func (s *Service) Withdraw(ctx context.Context, key string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		balance, err := s.accounts.LockAndGetBalance(tx, key)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if balance < amount {
			return accounts.ErrInsufficientFunds
		}

		err = s.accounts.Debit(tx, key, amount)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		newBalance = balance - amount

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("withdraw: %w", err)
	}

	return newBalance, nil
}

// GetBalance reads the committed balance without locking.
// accounts.ErrNotFound is surfaced as-is; clients may render it as zero but
// the engine never conflates the two.
func (s *Service) GetBalance(ctx context.Context, key string) (int64, error) {
	balance, err := s.accounts.GetBalance(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GameHistory returns the account's ledger in placement order, pending
// records included. A missing account is accounts.ErrNotFound, not an
// empty history.
func (s *Service) GameHistory(ctx context.Context, key string) ([]bets.Bet, error) {
	_, err := s.accounts.GetBalance(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("game history: %w", err)
	}

	history, err := s.bets.History(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("game history: %w", err)
	}

	return history, nil
}
