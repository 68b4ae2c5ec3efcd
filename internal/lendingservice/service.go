// Package lendingservice manages business logic layer of the lending ledger.
//
// Every mutating operation runs as one ledger transaction: either all of its
// writes are committed or none are.
package lendingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/internal/lendingrepo"
	"github.com/go-petr/bitlease/pkg/amountpkg"
	"github.com/go-petr/bitlease/pkg/currencypkg"
	"github.com/go-petr/bitlease/pkg/interestpkg"
)

// Repo provides the ledger storage needed by the lending service.
type Repo interface {
	ExecTx(ctx context.Context, fn func(ctx context.Context, s lendingrepo.Store) error) error
	View(ctx context.Context, fn func(ctx context.Context, s lendingrepo.Store) error) error
}

// TransferRepo executes and lists outbound transfers.
type TransferRepo interface {
	Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, account string, limit, offset int32) ([]domain.Transfer, error)
}

// Service facilitates lending service layer logic.
type Service struct {
	repo      Repo
	transfers TransferRepo
	policy    interestpkg.Policy
	metrics   *Metrics
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp new borrower positions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics records operation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New returns lending service struct to manage the ledger.
func New(repo Repo, transfers TransferRepo, policy interestpkg.Policy, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		transfers: transfers,
		policy:    policy,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func validCurrency(currency string) error {
	if !currencypkg.IsSupportedCurrency(currency) {
		return domain.ErrUnsupportedCurrency
	}

	return nil
}

func validAmount(amount *uint256.Int) error {
	if !amountpkg.IsPositive(amount) {
		return domain.ErrInvalidAmount
	}

	return nil
}

func (s *Service) done(ctx context.Context, op, account, currency string, err error) {
	s.metrics.observe(op, err)

	l := zerolog.Ctx(ctx)

	if err != nil {
		l.Info().Err(err).Str("op", op).Str("account", account).Str("currency", currency).Send()
		return
	}

	l.Debug().Str("op", op).Str("account", account).Str("currency", currency).Msg("ledger updated")
}

// Lend deposits amount of currency from account into the pool.
//
// The first deposit for (account, currency) opens a lender position with the
// policy's rate; later deposits only grow its principal.
func (s *Service) Lend(ctx context.Context, account, currency string, amount *uint256.Int) (pos domain.LenderPosition, err error) {
	defer func() { s.done(ctx, opLend, account, currency, err) }()

	if err := validCurrency(currency); err != nil {
		return pos, err
	}

	if err := validAmount(amount); err != nil {
		return pos, err
	}

	err = s.repo.ExecTx(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		res, err := st.GetReserve(ctx, currency)
		if err != nil {
			return err
		}

		p, err := st.GetLender(ctx, account, currency)

		switch {
		case errors.Is(err, domain.ErrLenderNotFound):
			p = domain.LenderPosition{
				Account:          account,
				Currency:         currency,
				Principal:        amountpkg.Zero(),
				InterestRate:     s.policy.Rate(currency),
				InterestCurrency: currency,
				CreatedAt:        s.now().UTC(),
			}
		case err != nil:
			return err
		}

		if p.Principal, err = amountpkg.Add(p.Principal, amount); err != nil {
			return err
		}

		if res.Pool, err = amountpkg.Add(res.Pool, amount); err != nil {
			return err
		}

		if err := st.PutLender(ctx, p); err != nil {
			return err
		}

		if err := st.PutReserve(ctx, res); err != nil {
			return err
		}

		if err := journal(ctx, st, account, currency, domain.EntryLend, amount); err != nil {
			return err
		}

		pos = p

		return nil
	})

	return pos, err
}

// Borrow draws arg.BorrowAmount from the pool against collateral in the same
// currency.
func (s *Service) Borrow(ctx context.Context, account string, arg domain.BorrowParams) (pos domain.BorrowerPosition, err error) {
	defer func() { s.done(ctx, opBorrow, account, arg.BorrowCurrency, err) }()

	if arg.CollateralCurrency != arg.BorrowCurrency {
		return pos, domain.ErrCurrencyMismatch
	}

	if err := validCurrency(arg.BorrowCurrency); err != nil {
		return pos, err
	}

	if err := validAmount(arg.BorrowAmount); err != nil {
		return pos, err
	}

	if err := validAmount(arg.CollateralAmount); err != nil {
		return pos, err
	}

	currency := arg.BorrowCurrency

	err = s.repo.ExecTx(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		res, err := st.GetReserve(ctx, currency)
		if err != nil {
			return err
		}

		if res.Pool.Lt(arg.BorrowAmount) {
			return domain.ErrInsufficientLiquidity
		}

		p, err := st.GetBorrower(ctx, account, currency)

		switch {
		case errors.Is(err, domain.ErrBorrowerNotFound):
			p = domain.BorrowerPosition{
				Account:            account,
				Currency:           currency,
				Principal:          amountpkg.Zero(),
				CollateralAmount:   amountpkg.Zero(),
				CollateralCurrency: arg.CollateralCurrency,
				InterestRate:       s.policy.Rate(currency),
				InterestCurrency:   currency,
				OpenedAt:           s.now().UTC(),
			}
		case err != nil:
			return err
		}

		if p.Principal, err = amountpkg.Add(p.Principal, arg.BorrowAmount); err != nil {
			return err
		}

		if p.CollateralAmount, err = amountpkg.Add(p.CollateralAmount, arg.CollateralAmount); err != nil {
			return err
		}

		p.ClosedAt = nil

		if res.Pool, err = amountpkg.Sub(res.Pool, arg.BorrowAmount); err != nil {
			return domain.ErrInsufficientLiquidity
		}

		if err := st.PutBorrower(ctx, p); err != nil {
			return err
		}

		if err := st.PutReserve(ctx, res); err != nil {
			return err
		}

		if err := journal(ctx, st, account, currency, domain.EntryBorrow, arg.BorrowAmount); err != nil {
			return err
		}

		pos = p

		return nil
	})

	return pos, err
}

// Withdraw takes amount of currency back out of the account's deposit and pays
// it out.
//
// The lender position and the pool are updated before the outbound transfer
// is requested. If the transfer fails the error wraps domain.ErrTransferFailed
// and the whole ledger transaction is rolled back.
func (s *Service) Withdraw(ctx context.Context, account, currency string, amount *uint256.Int) (t domain.Transfer, err error) {
	defer func() { s.done(ctx, opWithdraw, account, currency, err) }()

	if err := validCurrency(currency); err != nil {
		return t, err
	}

	if err := validAmount(amount); err != nil {
		return t, err
	}

	err = s.repo.ExecTx(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		res, err := st.GetReserve(ctx, currency)
		if err != nil {
			return err
		}

		p, err := st.GetLender(ctx, account, currency)
		if err != nil {
			if errors.Is(err, domain.ErrLenderNotFound) {
				return domain.ErrNotALender
			}

			return err
		}

		if p.Principal.IsZero() {
			return domain.ErrNotALender
		}

		if p.Principal.Lt(amount) {
			return domain.ErrInsufficientBalance
		}

		// Deposits already lent out to borrowers cannot be withdrawn.
		if res.Pool.Lt(amount) {
			return domain.ErrInsufficientLiquidity
		}

		if p.Principal, err = amountpkg.Sub(p.Principal, amount); err != nil {
			return domain.ErrInsufficientBalance
		}

		if res.Pool, err = amountpkg.Sub(res.Pool, amount); err != nil {
			return domain.ErrInsufficientLiquidity
		}

		if p.Principal.IsZero() {
			err = st.DeleteLender(ctx, account, currency)
		} else {
			err = st.PutLender(ctx, p)
		}

		if err != nil {
			return err
		}

		if err := st.PutReserve(ctx, res); err != nil {
			return err
		}

		if err := journal(ctx, st, account, currency, domain.EntryWithdraw, amount); err != nil {
			return err
		}

		t, err = s.transfers.Create(ctx, domain.CreateTransferParams{
			Account:  account,
			Currency: currency,
			Amount:   amount,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
		}

		return nil
	})

	return t, err
}

// PayInterest records an interest payment from a borrower.
//
// paid must equal principal * rate / 100 exactly. On success the interest
// reserve of the position's interest currency grows by paid.
func (s *Service) PayInterest(ctx context.Context, account, currency string, paid *uint256.Int) (res domain.Reserve, err error) {
	defer func() { s.done(ctx, opPayInterest, account, currency, err) }()

	if err := validCurrency(currency); err != nil {
		return res, err
	}

	if paid == nil {
		return res, domain.ErrInvalidAmount
	}

	err = s.repo.ExecTx(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		r, err := st.GetReserve(ctx, currency)
		if err != nil {
			return err
		}

		p, err := st.GetBorrower(ctx, account, currency)
		if err != nil {
			if errors.Is(err, domain.ErrBorrowerNotFound) {
				return domain.ErrNotABorrower
			}

			return err
		}

		due, err := amountpkg.Percent(p.Principal, p.InterestRate)
		if err != nil {
			return err
		}

		if !paid.Eq(due) {
			return domain.ErrInterestMismatch
		}

		if p.InterestCurrency != currency {
			if r, err = st.GetReserve(ctx, p.InterestCurrency); err != nil {
				return err
			}
		}

		if r.Interest, err = amountpkg.Add(r.Interest, paid); err != nil {
			return err
		}

		if err := st.PutReserve(ctx, r); err != nil {
			return err
		}

		if err := journal(ctx, st, account, p.InterestCurrency, domain.EntryInterest, paid); err != nil {
			return err
		}

		res = r

		return nil
	})

	return res, err
}

func journal(ctx context.Context, st lendingrepo.Store, account, currency, kind string, amount *uint256.Int) error {
	_, err := st.CreateEntry(ctx, domain.CreateEntryParams{
		Account:  account,
		Currency: currency,
		Kind:     kind,
		Amount:   amount,
	})

	return err
}
