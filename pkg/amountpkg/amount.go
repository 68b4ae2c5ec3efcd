// Package amountpkg provides checked arithmetic for ledger amounts.
//
// Amounts are unsigned 256-bit integers. Every operation that could leave the
// representable range reports an error instead of wrapping.
package amountpkg

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrMalformed indicates that the amount is not a number.
	ErrMalformed = errors.New("malformed amount")
	// ErrFractional indicates that the amount has a fractional part.
	ErrFractional = errors.New("amount must be a whole number")
	// ErrNegative indicates that the amount is below zero.
	ErrNegative = errors.New("negative amount")
	// ErrOverflow indicates that the result does not fit into 256 bits.
	ErrOverflow = errors.New("amount overflow")
	// ErrUnderflow indicates that the result would be below zero.
	ErrUnderflow = errors.New("amount underflow")
)

const percentBase = 100

// Zero returns a new zero amount.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// New returns an amount holding v.
func New(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// Parse converts a decimal string into an amount.
func Parse(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrMalformed
	}

	if d.IsNegative() {
		return nil, ErrNegative
	}

	if !d.IsInteger() {
		return nil, ErrFractional
	}

	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return v, nil
}

// IsPositive reports whether a is set and greater than zero.
func IsPositive(a *uint256.Int) bool {
	return a != nil && !a.IsZero()
}

// Add returns a + b.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// Sub returns a - b.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Lt(b) {
		return nil, ErrUnderflow
	}

	return new(uint256.Int).Sub(a, b), nil
}

// Percent returns a * rate / 100 truncated towards zero.
func Percent(a *uint256.Int, rate uint8) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, uint256.NewInt(uint64(rate)))
	if overflow {
		return nil, ErrOverflow
	}

	return z.Div(z, uint256.NewInt(percentBase)), nil
}

// Clone returns a copy of a, treating nil as zero.
func Clone(a *uint256.Int) *uint256.Int {
	if a == nil {
		return Zero()
	}

	return new(uint256.Int).Set(a)
}

// ValidAmount validates that a string field holds a non-negative whole number
// that fits into an amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := Parse(s)
		return err == nil
	}

	return false
}
