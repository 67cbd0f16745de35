package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rupeehall/wallet-engine/internal/infra/pgtestutil"
	"github.com/rupeehall/wallet-engine/internal/repos/accounts"
)

func upsertAccount(db *sql.DB, t *testing.T, key string, balance int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO accounts (account_key, balance) VALUES ($1, $2)
		ON CONFLICT (account_key) DO UPDATE SET balance = EXCLUDED.balance
	`, key, balance)
	if err != nil {
		t.Fatalf("seed upsert account(%s): %v", key, err)
	}
}

func TestAccounts_GetBalance(t *testing.T) {
	t.Parallel()

	type tc struct {
		name        string
		seed        func(db *sql.DB, t *testing.T)
		key         string
		wantBalance int64
		wantErr     error
	}

	tests := []tc{
		{
			name:        "ok_account_exists",
			seed:        func(db *sql.DB, t *testing.T) { upsertAccount(db, t, "acct-10", 1000) },
			key:         "acct-10",
			wantBalance: 1000,
		},
		{
			name:    "error_account_not_found",
			seed:    nil,
			key:     "nobody",
			wantErr: accounts.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			got, err := repo.GetBalance(context.Background(), tt.key)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.wantBalance {
				t.Fatalf("balance: want %d, got %d", tt.wantBalance, got)
			}
		})
	}
}

func TestAccounts_Debit(t *testing.T) {
	t.Parallel()

	type tc struct {
		name          string
		seed          func(db *sql.DB, t *testing.T)
		key           string
		amount        int64
		wantBalance   int64
		wantErr       error
		checkFinalBal bool
	}

	tests := []tc{
		{
			name:          "sufficient_funds",
			seed:          func(db *sql.DB, t *testing.T) { upsertAccount(db, t, "acct-d1", 1_000) },
			key:           "acct-d1",
			amount:        250,
			wantBalance:   750,
			checkFinalBal: true,
		},
		{
			name:          "exact_to_zero",
			seed:          func(db *sql.DB, t *testing.T) { upsertAccount(db, t, "acct-d2", 300) },
			key:           "acct-d2",
			amount:        300,
			wantBalance:   0,
			checkFinalBal: true,
		},
		{
			name:          "insufficient_funds_balance_unchanged",
			seed:          func(db *sql.DB, t *testing.T) { upsertAccount(db, t, "acct-d3", 200) },
			key:           "acct-d3",
			amount:        300,
			wantBalance:   200,
			wantErr:       accounts.ErrInsufficientFunds,
			checkFinalBal: true,
		},
		{
			name:    "missing_account_treated_as_insufficient",
			seed:    nil,
			key:     "ghost",
			amount:  100,
			wantErr: accounts.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			err = repo.Debit(tx, tt.key, tt.amount)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("debit: %v", err)
				}

				err = tx.Commit()
				if err != nil {
					t.Fatalf("commit: %v", err)
				}
			}

			if tt.checkFinalBal {
				got, gerr := repo.GetBalance(ctx, tt.key)
				if gerr != nil {
					t.Fatalf("get balance after debit: %v", gerr)
				}
				if got != tt.wantBalance {
					t.Fatalf("final balance: want %d, got %d", tt.wantBalance, got)
				}
			}
		})
	}
}

func TestAccounts_CreditThenLockAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	upsertAccount(db, t, "acct-c1", 100)

	repo := New(db)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = repo.Credit(tx, "acct-c1", 400)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}

	got, err := repo.LockAndGetBalance(tx, "acct-c1")
	if err != nil {
		t.Fatalf("lock and get: %v", err)
	}

	if got != 500 {
		t.Fatalf("locked balance: want 500, got %d", got)
	}

	if _, err := repo.LockAndGetBalance(tx, "ghost"); !errors.Is(err, accounts.ErrNotFound) {
		t.Fatalf("lock missing account: want ErrNotFound, got %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err = repo.GetBalance(context.Background(), "acct-c1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}

	if got != 500 {
		t.Fatalf("committed balance: want 500, got %d", got)
	}
}
