package lendingrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/amountpkg"
)

type positionKey struct {
	account  string
	currency string
}

type memState struct {
	lenders     map[positionKey]domain.LenderPosition
	borrowers   map[positionKey]domain.BorrowerPosition
	reserves    map[string]domain.Reserve
	entries     []domain.Entry
	nextEntryID int64
}

// clone copies the maps only. Stored values are never mutated in place: Get
// hands out copies and Put stores copies.
func (s *memState) clone() *memState {
	c := &memState{
		lenders:     make(map[positionKey]domain.LenderPosition, len(s.lenders)),
		borrowers:   make(map[positionKey]domain.BorrowerPosition, len(s.borrowers)),
		reserves:    make(map[string]domain.Reserve, len(s.reserves)),
		entries:     s.entries[:len(s.entries):len(s.entries)],
		nextEntryID: s.nextEntryID,
	}

	for k, v := range s.lenders {
		c.lenders[k] = v
	}

	for k, v := range s.borrowers {
		c.borrowers[k] = v
	}

	for k, v := range s.reserves {
		c.reserves[k] = v
	}

	return c
}

// RepoMem keeps the ledger in process memory.
//
// Transactions run one at a time: ExecTx works on a copy of the state and
// swaps it in only when fn succeeds.
type RepoMem struct {
	mu    sync.RWMutex
	state *memState
	now   func() time.Time
}

// NewRepoMem returns an empty in-memory ledger.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		state: &memState{
			lenders:   map[positionKey]domain.LenderPosition{},
			borrowers: map[positionKey]domain.BorrowerPosition{},
			reserves:  map[string]domain.Reserve{},
		},
		now: time.Now,
	}
}

// ExecTx runs fn atomically against the ledger.
func (r *RepoMem) ExecTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := r.state.clone()

	if err := fn(ctx, &memStore{state: work, now: r.now}); err != nil {
		return err
	}

	r.state = work

	return nil
}

// View runs fn against a read-only view of the ledger.
func (r *RepoMem) View(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fn(ctx, &memStore{state: r.state, now: r.now, readOnly: true})
}

type memStore struct {
	state    *memState
	now      func() time.Time
	readOnly bool
}

func (s *memStore) GetLender(_ context.Context, account, currency string) (domain.LenderPosition, error) {
	p, ok := s.state.lenders[positionKey{account, currency}]
	if !ok {
		return domain.LenderPosition{}, domain.ErrLenderNotFound
	}

	p.Principal = amountpkg.Clone(p.Principal)

	return p, nil
}

func (s *memStore) PutLender(_ context.Context, p domain.LenderPosition) error {
	if s.readOnly {
		return errReadOnly
	}

	key := positionKey{p.Account, p.Currency}

	if old, ok := s.state.lenders[key]; ok {
		old.Principal = amountpkg.Clone(p.Principal)
		s.state.lenders[key] = old

		return nil
	}

	p.Principal = amountpkg.Clone(p.Principal)
	s.state.lenders[key] = p

	return nil
}

func (s *memStore) DeleteLender(_ context.Context, account, currency string) error {
	if s.readOnly {
		return errReadOnly
	}

	delete(s.state.lenders, positionKey{account, currency})

	return nil
}

func (s *memStore) GetBorrower(_ context.Context, account, currency string) (domain.BorrowerPosition, error) {
	p, ok := s.state.borrowers[positionKey{account, currency}]
	if !ok {
		return domain.BorrowerPosition{}, domain.ErrBorrowerNotFound
	}

	p.Principal = amountpkg.Clone(p.Principal)
	p.CollateralAmount = amountpkg.Clone(p.CollateralAmount)

	return p, nil
}

func (s *memStore) PutBorrower(_ context.Context, p domain.BorrowerPosition) error {
	if s.readOnly {
		return errReadOnly
	}

	key := positionKey{p.Account, p.Currency}

	stored := p
	if old, ok := s.state.borrowers[key]; ok {
		stored = old
		stored.ClosedAt = p.ClosedAt
	}

	stored.Principal = amountpkg.Clone(p.Principal)
	stored.CollateralAmount = amountpkg.Clone(p.CollateralAmount)
	s.state.borrowers[key] = stored

	return nil
}

func (s *memStore) GetReserve(_ context.Context, currency string) (domain.Reserve, error) {
	res, ok := s.state.reserves[currency]
	if !ok {
		return domain.Reserve{
			Currency: currency,
			Pool:     amountpkg.Zero(),
			Interest: amountpkg.Zero(),
		}, nil
	}

	res.Pool = amountpkg.Clone(res.Pool)
	res.Interest = amountpkg.Clone(res.Interest)

	return res, nil
}

func (s *memStore) PutReserve(_ context.Context, res domain.Reserve) error {
	if s.readOnly {
		return errReadOnly
	}

	res.Pool = amountpkg.Clone(res.Pool)
	res.Interest = amountpkg.Clone(res.Interest)
	s.state.reserves[res.Currency] = res

	return nil
}

func (s *memStore) ListReserves(ctx context.Context) ([]domain.Reserve, error) {
	items := make([]domain.Reserve, 0, len(s.state.reserves))

	for c := range s.state.reserves {
		res, _ := s.GetReserve(ctx, c)
		items = append(items, res)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Currency < items[j].Currency })

	return items, nil
}

func (s *memStore) CreateEntry(_ context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	if s.readOnly {
		return domain.Entry{}, errReadOnly
	}

	s.state.nextEntryID++

	e := domain.Entry{
		ID:        s.state.nextEntryID,
		Account:   arg.Account,
		Currency:  arg.Currency,
		Kind:      arg.Kind,
		Amount:    amountpkg.Clone(arg.Amount),
		CreatedAt: s.now().UTC(),
	}

	s.state.entries = append(s.state.entries, e)

	return e, nil
}

func (s *memStore) ListEntries(_ context.Context, account string, limit, offset int32) ([]domain.Entry, error) {
	items := []domain.Entry{}

	var skipped int32

	for _, e := range s.state.entries {
		if e.Account != account {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		if int32(len(items)) >= limit {
			break
		}

		e.Amount = amountpkg.Clone(e.Amount)
		items = append(items, e)
	}

	return items, nil
}
