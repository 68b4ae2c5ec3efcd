// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/holiman/uint256"

	"github.com/go-petr/bitlease/pkg/amountpkg"
)

var (
	// ErrInvalidAmount indicates a missing, zero or malformed amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnsupportedCurrency indicates a currency outside of the supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrCurrencyMismatch indicates that collateral and borrow currencies differ.
	ErrCurrencyMismatch = errors.New("collateral and borrow currency mismatch")
	// ErrInsufficientLiquidity indicates that the pool holds less than the requested borrow.
	ErrInsufficientLiquidity = errors.New("insufficient pool liquidity")
	// ErrInsufficientBalance indicates a withdrawal above the lender principal.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNotALender indicates that the account has no lender position in the currency.
	ErrNotALender = errors.New("account is not a lender")
	// ErrNotABorrower indicates that the account has no borrower position in the currency.
	ErrNotABorrower = errors.New("account is not a borrower")
	// ErrInterestMismatch indicates that the paid interest differs from the amount due.
	ErrInterestMismatch = errors.New("paid interest does not match interest due")
	// ErrTransferFailed indicates that the outbound transfer could not be executed.
	ErrTransferFailed = errors.New("outbound transfer failed")
	// ErrOverflow indicates that an amount update would exceed the representable range.
	ErrOverflow = amountpkg.ErrOverflow

	// ErrLenderNotFound is returned by storage when no lender row exists.
	ErrLenderNotFound = errors.New("lender position not found")
	// ErrBorrowerNotFound is returned by storage when no borrower row exists.
	ErrBorrowerNotFound = errors.New("borrower position not found")
)

// LenderPosition holds the deposit of one account in one currency.
type LenderPosition struct {
	Account          string       `json:"account"`
	Currency         string       `json:"currency"`
	Principal        *uint256.Int `json:"principal"`
	InterestRate     uint8        `json:"interest_rate"`
	InterestCurrency string       `json:"interest_currency"`
	CreatedAt        time.Time    `json:"created_at"`
}

// BorrowerPosition holds the debt of one account in one borrowed currency.
type BorrowerPosition struct {
	Account            string       `json:"account"`
	Currency           string       `json:"currency"`
	Principal          *uint256.Int `json:"principal"`
	CollateralAmount   *uint256.Int `json:"collateral_amount"`
	CollateralCurrency string       `json:"collateral_currency"`
	InterestRate       uint8        `json:"interest_rate"`
	InterestCurrency   string       `json:"interest_currency"`
	OpenedAt           time.Time    `json:"opened_at"`
	ClosedAt           *time.Time   `json:"closed_at,omitempty"`
}

// BorrowParams is the input data for the borrow operation.
type BorrowParams struct {
	CollateralCurrency string
	CollateralAmount   *uint256.Int
	BorrowCurrency     string
	BorrowAmount       *uint256.Int
}

// Reserve holds the pool and interest reserves of one currency.
type Reserve struct {
	Currency string       `json:"currency"`
	Pool     *uint256.Int `json:"pool"`
	Interest *uint256.Int `json:"interest"`
}
