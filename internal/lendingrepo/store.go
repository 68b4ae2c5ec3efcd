// Package lendingrepo manages repository layer of the lending ledger.
//
// The repository is a plain state container: it stores lender and borrower
// positions, per-currency reserves and the entry journal without checking any
// business rule. Atomicity is provided by ExecTx.
package lendingrepo

import (
	"context"

	"github.com/go-petr/bitlease/internal/domain"
)

// Store is the ledger state seen from inside a transaction or a read view.
type Store interface {
	// GetLender returns domain.ErrLenderNotFound when there is no position.
	GetLender(ctx context.Context, account, currency string) (domain.LenderPosition, error)
	// PutLender inserts the position or updates its principal.
	PutLender(ctx context.Context, p domain.LenderPosition) error
	DeleteLender(ctx context.Context, account, currency string) error

	// GetBorrower returns domain.ErrBorrowerNotFound when there is no position.
	GetBorrower(ctx context.Context, account, currency string) (domain.BorrowerPosition, error)
	// PutBorrower inserts the position or updates its principal, collateral and closed_at.
	PutBorrower(ctx context.Context, p domain.BorrowerPosition) error

	// GetReserve returns zero reserves for a currency that was never touched.
	GetReserve(ctx context.Context, currency string) (domain.Reserve, error)
	PutReserve(ctx context.Context, r domain.Reserve) error
	ListReserves(ctx context.Context) ([]domain.Reserve, error)

	CreateEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error)
	ListEntries(ctx context.Context, account string, limit, offset int32) ([]domain.Entry, error)
}
