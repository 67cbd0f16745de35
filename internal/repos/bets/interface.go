package bets

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrBetAlreadyActive = errors.New("bet already active for game")
	ErrNoActiveBet      = errors.New("no active bet for game")
	ErrAlreadyResolved  = errors.New("bet already resolved")
)

type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
)

// Bet is one ledger record. Sequence is the per-account ordering token
// assigned at placement; records are immutable once resolved.
type Bet struct {
	AccountKey string
	Sequence   int64
	GameName   string
	BetAmount  int64
	Winnings   int64
	Outcome    Outcome
	PlacedAt   time.Time
	ResolvedAt *time.Time
}

type Bets interface {
	InsertPending(tx *sql.Tx, key, gameName string, betAmount int64) (int64, error)
	LockPending(tx *sql.Tx, key, gameName string) (*Bet, error)
	LatestByGame(tx *sql.Tx, key, gameName string) (*Bet, error)
	Resolve(tx *sql.Tx, key string, sequence int64, outcome Outcome, winnings int64) error
	History(ctx context.Context, key string) ([]Bet, error)
}
