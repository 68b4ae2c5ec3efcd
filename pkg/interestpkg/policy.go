// Package interestpkg decides which interest rate a new position gets.
package interestpkg

import (
	"errors"
	"fmt"
)

// MaxRate is the highest rate a policy may assign, in percent.
const MaxRate = 100

// ErrRateOutOfRange indicates a rate above MaxRate.
var ErrRateOutOfRange = errors.New("interest rate out of range")

// Policy assigns a rate, in whole percent, to a position when it is opened.
// The rate is stored on the position and never re-evaluated.
type Policy interface {
	Rate(currency string) uint8
}

// Fixed assigns the same rate to every position.
type Fixed struct {
	rate uint8
}

// NewFixed returns a Fixed policy, validating the rate.
func NewFixed(rate int) (Fixed, error) {
	if rate < 0 || rate > MaxRate {
		return Fixed{}, fmt.Errorf("%w: %d", ErrRateOutOfRange, rate)
	}

	return Fixed{rate: uint8(rate)}, nil
}

// Rate implements Policy.
func (f Fixed) Rate(string) uint8 {
	return f.rate
}
