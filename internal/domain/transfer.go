package domain

import (
	"errors"
	"time"

	"github.com/holiman/uint256"
)

// ErrTransferNotFound indicates that the transfer is not found.
var ErrTransferNotFound = errors.New("transfer not found")

// Transfer is an outbound native transfer requested by the ledger, paying an
// account out of a pool.
type Transfer struct {
	ID        int64        `json:"id"`
	Account   string       `json:"account"`
	Currency  string       `json:"currency"`
	Amount    *uint256.Int `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}

// CreateTransferParams is the input data for an outbound transfer.
type CreateTransferParams struct {
	Account  string       `json:"account"`
	Currency string       `json:"currency"`
	Amount   *uint256.Int `json:"amount"`
}
