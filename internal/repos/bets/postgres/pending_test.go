package bets

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rupeehall/wallet-engine/internal/infra/pgtestutil"
	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

func seedAccount(db *sql.DB, t *testing.T, key string, balance int64) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO accounts (account_key, balance) VALUES ($1, $2)`, key, balance)
	if err != nil {
		t.Fatalf("seed account(%s): %v", key, err)
	}
}

func inTx(db *sql.DB, t *testing.T, fn func(tx *sql.Tx) error) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		t.Fatalf("tx fn: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestBets_InsertPending_SequenceIsMonotonic(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(db, t, "acct-1", 10_000)
	repo := New(db)

	var first, second int64

	inTx(db, t, func(tx *sql.Tx) error {
		seq, err := repo.InsertPending(tx, "acct-1", "lucky-number", 100)
		if err != nil {
			return err
		}
		first = seq

		// settle it so the next placement for the same game is allowed
		return repo.Resolve(tx, "acct-1", seq, bets.OutcomeLoss, 0)
	})

	inTx(db, t, func(tx *sql.Tx) error {
		seq, err := repo.InsertPending(tx, "acct-1", "lucky-number", 200)
		if err != nil {
			return err
		}
		second = seq
		return nil
	})

	if first != 1 || second != 2 {
		t.Fatalf("sequences: want 1 then 2, got %d then %d", first, second)
	}
}

func TestBets_InsertPending_SecondPendingSameGameRejected(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(db, t, "acct-1", 10_000)
	repo := New(db)

	inTx(db, t, func(tx *sql.Tx) error {
		_, err := repo.InsertPending(tx, "acct-1", "quick-pick", 100)
		return err
	})

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = repo.InsertPending(tx, "acct-1", "quick-pick", 150)
	if !errors.Is(err, bets.ErrBetAlreadyActive) {
		t.Fatalf("want ErrBetAlreadyActive, got %v", err)
	}
}

func TestBets_InsertPending_DifferentGamesMayBePending(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(db, t, "acct-1", 10_000)
	repo := New(db)

	inTx(db, t, func(tx *sql.Tx) error {
		_, err := repo.InsertPending(tx, "acct-1", "quick-pick", 100)
		if err != nil {
			return err
		}

		_, err = repo.InsertPending(tx, "acct-1", "lightning-round", 100)
		return err
	})
}

func TestBets_LockPending_And_LatestByGame(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(db, t, "acct-1", 10_000)
	repo := New(db)

	var seq int64

	inTx(db, t, func(tx *sql.Tx) error {
		s, err := repo.InsertPending(tx, "acct-1", "lucky-number", 300)
		seq = s
		return err
	})

	inTx(db, t, func(tx *sql.Tx) error {
		bet, err := repo.LockPending(tx, "acct-1", "lucky-number")
		if err != nil {
			return err
		}

		if bet.Sequence != seq || bet.BetAmount != 300 || bet.Outcome != bets.OutcomePending {
			t.Fatalf("unexpected pending bet: %+v", bet)
		}

		if _, err := repo.LockPending(tx, "acct-1", "quick-pick"); !errors.Is(err, bets.ErrNoActiveBet) {
			t.Fatalf("lock pending for other game: want ErrNoActiveBet, got %v", err)
		}

		if _, err := repo.LatestByGame(tx, "acct-1", "quick-pick"); !errors.Is(err, bets.ErrNoActiveBet) {
			t.Fatalf("latest for unplayed game: want ErrNoActiveBet, got %v", err)
		}

		latest, err := repo.LatestByGame(tx, "acct-1", "lucky-number")
		if err != nil {
			return err
		}

		if latest.Sequence != seq {
			t.Fatalf("latest sequence: want %d, got %d", seq, latest.Sequence)
		}

		return nil
	})
}
