package domain

import (
	"time"

	"github.com/holiman/uint256"
)

// Kinds of ledger entries.
const (
	EntryLend     = "lend"
	EntryBorrow   = "borrow"
	EntryWithdraw = "withdraw"
	EntryInterest = "interest"
)

// Entry records one applied ledger operation for an account.
type Entry struct {
	ID        int64        `json:"id"`
	Account   string       `json:"account"`
	Currency  string       `json:"currency"`
	Kind      string       `json:"kind"`
	Amount    *uint256.Int `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	Account  string
	Currency string
	Kind     string
	Amount   *uint256.Int
}
