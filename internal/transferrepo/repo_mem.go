package transferrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/amountpkg"
)

// RepoMem records transfers in process memory.
type RepoMem struct {
	mu        sync.RWMutex
	transfers []domain.Transfer
	now       func() time.Time
}

// NewRepoMem returns an empty in-memory transfer repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{now: time.Now}
}

// Create records the transfer and then returns it.
func (r *RepoMem) Create(_ context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	if !amountpkg.IsPositive(arg.Amount) {
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := domain.Transfer{
		ID:        int64(len(r.transfers) + 1),
		Account:   arg.Account,
		Currency:  arg.Currency,
		Amount:    amountpkg.Clone(arg.Amount),
		CreatedAt: r.now().UTC(),
	}

	r.transfers = append(r.transfers, t)

	return t, nil
}

// Get returns the transfer with the given id.
func (r *RepoMem) Get(_ context.Context, id int64) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 1 || id > int64(len(r.transfers)) {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}

	t := r.transfers[id-1]
	t.Amount = amountpkg.Clone(t.Amount)

	return t, nil
}

// List returns the transfers paid to the account.
func (r *RepoMem) List(_ context.Context, account string, limit, offset int32) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.Transfer{}

	var skipped int32

	for _, t := range r.transfers {
		if t.Account != account {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		if int32(len(items)) >= limit {
			break
		}

		t.Amount = amountpkg.Clone(t.Amount)
		items = append(items, t)
	}

	return items, nil
}
