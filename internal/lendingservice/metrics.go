package lendingservice

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-petr/bitlease/internal/domain"
)

const (
	opLend        = "lend"
	opBorrow      = "borrow"
	opWithdraw    = "withdraw"
	opPayInterest = "pay_interest"
)

// Metrics counts ledger operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics registers the ledger collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bitlease",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by operation and result.",
		}, []string{"operation", "result"}),
	}

	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}

	return m, nil
}

var resultLabels = []struct {
	err   error
	label string
}{
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrUnsupportedCurrency, "unsupported_currency"},
	{domain.ErrCurrencyMismatch, "currency_mismatch"},
	{domain.ErrInsufficientLiquidity, "insufficient_liquidity"},
	{domain.ErrInsufficientBalance, "insufficient_balance"},
	{domain.ErrNotALender, "not_a_lender"},
	{domain.ErrNotABorrower, "not_a_borrower"},
	{domain.ErrInterestMismatch, "interest_mismatch"},
	{domain.ErrTransferFailed, "transfer_failed"},
	{domain.ErrOverflow, "overflow"},
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}

	for _, rl := range resultLabels {
		if errors.Is(err, rl.err) {
			return rl.label
		}
	}

	return "internal"
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}
