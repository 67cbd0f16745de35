package wallet

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Create(tx *sql.Tx, key string) error {
	args := m.Called(tx, key)
	return args.Error(0)
}

func (m *MockAccounts) Exists(tx *sql.Tx, key string) error {
	args := m.Called(tx, key)
	return args.Error(0)
}

func (m *MockAccounts) GetBalance(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccounts) LockAndGetBalance(tx *sql.Tx, key string) (int64, error) {
	args := m.Called(tx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccounts) Credit(tx *sql.Tx, key string, amount int64) error {
	args := m.Called(tx, key, amount)
	return args.Error(0)
}

func (m *MockAccounts) Debit(tx *sql.Tx, key string, amount int64) error {
	args := m.Called(tx, key, amount)
	return args.Error(0)
}

type MockBets struct {
	mock.Mock
}

func (m *MockBets) InsertPending(tx *sql.Tx, key, gameName string, betAmount int64) (int64, error) {
	args := m.Called(tx, key, gameName, betAmount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBets) LockPending(tx *sql.Tx, key, gameName string) (*bets.Bet, error) {
	args := m.Called(tx, key, gameName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bets.Bet), args.Error(1)
}

func (m *MockBets) LatestByGame(tx *sql.Tx, key, gameName string) (*bets.Bet, error) {
	args := m.Called(tx, key, gameName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bets.Bet), args.Error(1)
}

func (m *MockBets) Resolve(tx *sql.Tx, key string, sequence int64, outcome bets.Outcome, winnings int64) error {
	args := m.Called(tx, key, sequence, outcome, winnings)
	return args.Error(0)
}

func (m *MockBets) History(ctx context.Context, key string) ([]bets.Bet, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bets.Bet), args.Error(1)
}

// newTestService wires mocks in place of the Postgres repos and replaces the
// transaction runner with a pass-through, so settlement rules can be tested
// without a database.
func newTestService(accountsRepo *MockAccounts, betsRepo *MockBets) *Service {
	return &Service{
		accounts: accountsRepo,
		bets:     betsRepo,
		withTx: func(_ context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		},
	}
}
