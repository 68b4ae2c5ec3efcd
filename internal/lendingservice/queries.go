package lendingservice

import (
	"context"
	"errors"
	"math"

	"github.com/holiman/uint256"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/internal/lendingrepo"
	"github.com/go-petr/bitlease/pkg/amountpkg"
	"github.com/go-petr/bitlease/pkg/currencypkg"
)

// GetPosition returns the lender principal of account in currency, or the
// borrower principal when there is no lender position. ok is false when the
// account holds neither; a position with zero principal counts as absent.
func (s *Service) GetPosition(ctx context.Context, account, currency string) (amount *uint256.Int, ok bool, err error) {
	err = s.repo.View(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		lender, err := st.GetLender(ctx, account, currency)

		switch {
		case err == nil && !lender.Principal.IsZero():
			amount, ok = lender.Principal, true
			return nil
		case err != nil && !errors.Is(err, domain.ErrLenderNotFound):
			return err
		}

		borrower, err := st.GetBorrower(ctx, account, currency)

		switch {
		case err == nil && !borrower.Principal.IsZero():
			amount, ok = borrower.Principal, true
		case err != nil && !errors.Is(err, domain.ErrBorrowerNotFound):
			return err
		}

		return nil
	})

	if err != nil {
		return nil, false, err
	}

	return amount, ok, nil
}

// GetLenderPosition returns the full lender position.
func (s *Service) GetLenderPosition(ctx context.Context, account, currency string) (pos domain.LenderPosition, err error) {
	err = s.repo.View(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		pos, err = st.GetLender(ctx, account, currency)
		if errors.Is(err, domain.ErrLenderNotFound) {
			return domain.ErrNotALender
		}

		return err
	})

	return pos, err
}

// GetBorrowerPosition returns the full borrower position.
func (s *Service) GetBorrowerPosition(ctx context.Context, account, currency string) (pos domain.BorrowerPosition, err error) {
	err = s.repo.View(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		pos, err = st.GetBorrower(ctx, account, currency)
		if errors.Is(err, domain.ErrBorrowerNotFound) {
			return domain.ErrNotABorrower
		}

		return err
	})

	return pos, err
}

// InterestDue returns the interest the borrower has to pay in one PayInterest call.
func (s *Service) InterestDue(ctx context.Context, account, currency string) (*uint256.Int, error) {
	pos, err := s.GetBorrowerPosition(ctx, account, currency)
	if err != nil {
		return nil, err
	}

	return amountpkg.Percent(pos.Principal, pos.InterestRate)
}

// GetReserves returns pool and interest reserves of every supported currency.
func (s *Service) GetReserves(ctx context.Context) ([]domain.Reserve, error) {
	var stored []domain.Reserve

	err := s.repo.View(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		var err error
		stored, err = st.ListReserves(ctx)

		return err
	})
	if err != nil {
		return nil, err
	}

	byCurrency := make(map[string]domain.Reserve, len(stored))
	for _, r := range stored {
		byCurrency[r.Currency] = r
	}

	items := make([]domain.Reserve, 0, len(currencypkg.SupportedCurrencies))

	for _, c := range currencypkg.SupportedCurrencies {
		r, ok := byCurrency[c]
		if !ok {
			r = domain.Reserve{Currency: c, Pool: amountpkg.Zero(), Interest: amountpkg.Zero()}
		}

		items = append(items, r)
	}

	return items, nil
}

// pageBounds converts a 1-based page into limit and offset. ok is false when
// the page starts beyond what an int32 offset can address, i.e. it is empty.
func pageBounds(pageSize, pageID int32) (limit, offset int32, ok bool) {
	if pageSize < 1 || pageID < 1 {
		return 0, 0, false
	}

	off := (int64(pageID) - 1) * int64(pageSize)
	if off > math.MaxInt32 {
		return 0, 0, false
	}

	return pageSize, int32(off), true
}

// ListEntries returns a page of the account's ledger journal.
func (s *Service) ListEntries(ctx context.Context, account string, pageSize, pageID int32) ([]domain.Entry, error) {
	limit, offset, ok := pageBounds(pageSize, pageID)
	if !ok {
		return []domain.Entry{}, nil
	}

	var entries []domain.Entry

	err := s.repo.View(ctx, func(ctx context.Context, st lendingrepo.Store) error {
		var err error
		entries, err = st.ListEntries(ctx, account, limit, offset)

		return err
	})

	return entries, err
}

// ListTransfers returns a page of the transfers paid out to the account.
func (s *Service) ListTransfers(ctx context.Context, account string, pageSize, pageID int32) ([]domain.Transfer, error) {
	limit, offset, ok := pageBounds(pageSize, pageID)
	if !ok {
		return []domain.Transfer{}, nil
	}

	return s.transfers.List(ctx, account, limit, offset)
}

// GetTransfer returns one transfer paid out to the account. Transfers of other
// accounts are reported as domain.ErrTransferNotFound.
func (s *Service) GetTransfer(ctx context.Context, account string, id int64) (domain.Transfer, error) {
	t, err := s.transfers.Get(ctx, id)
	if err != nil {
		return domain.Transfer{}, err
	}

	if t.Account != account {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}

	return t, nil
}
