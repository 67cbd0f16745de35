package bets

import (
	"database/sql"

	"github.com/rupeehall/wallet-engine/internal/repos/bets"
)

var _ bets.Bets = (*betsRepo)(nil)

type betsRepo struct{ db *sql.DB }

func New(db *sql.DB) *betsRepo {
	return &betsRepo{db: db}
}
