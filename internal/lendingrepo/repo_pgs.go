package lendingrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/holiman/uint256"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/dbpkg"
	"github.com/go-petr/bitlease/pkg/errorspkg"
)

// numeric_value_out_of_range
const pqNumericOutOfRange = "22003"

// RepoPGS facilitates ledger repository layer logic on Postgres.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns RepoPGS bound to an existing connection or transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// ExecTx runs fn within a single database transaction.
//
// The context handed to fn carries the transaction, so other repositories
// called with it (see dbpkg.Conn) commit or roll back together with the ledger.
func (r *RepoPGS) ExecTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	l := zerolog.Ctx(ctx)

	if r.conn == nil {
		return fn(ctx, r)
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(dbpkg.WithTx(ctx, tx), NewTxRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// View runs fn against the connection without opening a transaction.
func (r *RepoPGS) View(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, r)
}

func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return errorspkg.ErrInternal
	}

	switch pqErr.Constraint {
	case "lenders_principal_check":
		return domain.ErrInsufficientBalance
	case "reserves_pool_check":
		return domain.ErrInsufficientLiquidity
	}

	if pqErr.Code == pqNumericOutOfRange {
		return domain.ErrOverflow
	}

	return errorspkg.ErrInternal
}

const getLenderQuery = `
SELECT
	account, currency, principal, interest_rate, interest_currency, created_at
FROM lenders
WHERE account = $1 AND currency = $2
`

// GetLender returns the lender position of the account in the currency.
func (r *RepoPGS) GetLender(ctx context.Context, account, currency string) (domain.LenderPosition, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getLenderQuery, account, currency)

	p := domain.LenderPosition{Principal: new(uint256.Int)}

	err := row.Scan(
		&p.Account,
		&p.Currency,
		p.Principal,
		&p.InterestRate,
		&p.InterestCurrency,
		&p.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LenderPosition{}, domain.ErrLenderNotFound
		}

		l.Error().Err(err).Send()

		return domain.LenderPosition{}, errorspkg.ErrInternal
	}

	return p, nil
}

const putLenderQuery = `
INSERT INTO
	lenders (account, currency, principal, interest_rate, interest_currency, created_at)
VALUES
	($1, $2, $3, $4, $5, $6)
ON CONFLICT (account, currency) DO UPDATE
SET principal = EXCLUDED.principal
`

// PutLender inserts the lender position or updates its principal.
func (r *RepoPGS) PutLender(ctx context.Context, p domain.LenderPosition) error {
	l := zerolog.Ctx(ctx)

	_, err := r.db.ExecContext(ctx, putLenderQuery,
		p.Account,
		p.Currency,
		p.Principal,
		p.InterestRate,
		p.InterestCurrency,
		p.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Msgf("PutLender(ctx, %+v)", p)
		return mapError(err)
	}

	return nil
}

const deleteLenderQuery = `
DELETE FROM lenders
WHERE account = $1 AND currency = $2
`

// DeleteLender removes the lender position.
func (r *RepoPGS) DeleteLender(ctx context.Context, account, currency string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteLenderQuery, account, currency); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const getBorrowerQuery = `
SELECT
	account, currency, principal, collateral_amount, collateral_currency,
	interest_rate, interest_currency, opened_at, closed_at
FROM borrowers
WHERE account = $1 AND currency = $2
`

// GetBorrower returns the borrower position of the account in the currency.
func (r *RepoPGS) GetBorrower(ctx context.Context, account, currency string) (domain.BorrowerPosition, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getBorrowerQuery, account, currency)

	p := domain.BorrowerPosition{
		Principal:        new(uint256.Int),
		CollateralAmount: new(uint256.Int),
	}

	var closedAt sql.NullTime

	err := row.Scan(
		&p.Account,
		&p.Currency,
		p.Principal,
		p.CollateralAmount,
		&p.CollateralCurrency,
		&p.InterestRate,
		&p.InterestCurrency,
		&p.OpenedAt,
		&closedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BorrowerPosition{}, domain.ErrBorrowerNotFound
		}

		l.Error().Err(err).Send()

		return domain.BorrowerPosition{}, errorspkg.ErrInternal
	}

	if closedAt.Valid {
		p.ClosedAt = &closedAt.Time
	}

	return p, nil
}

const putBorrowerQuery = `
INSERT INTO
	borrowers (account, currency, principal, collateral_amount, collateral_currency,
		interest_rate, interest_currency, opened_at, closed_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (account, currency) DO UPDATE
SET principal = EXCLUDED.principal,
	collateral_amount = EXCLUDED.collateral_amount,
	closed_at = EXCLUDED.closed_at
`

// PutBorrower inserts the borrower position or updates its amounts.
func (r *RepoPGS) PutBorrower(ctx context.Context, p domain.BorrowerPosition) error {
	l := zerolog.Ctx(ctx)

	var closedAt sql.NullTime
	if p.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *p.ClosedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, putBorrowerQuery,
		p.Account,
		p.Currency,
		p.Principal,
		p.CollateralAmount,
		p.CollateralCurrency,
		p.InterestRate,
		p.InterestCurrency,
		p.OpenedAt,
		closedAt,
	)
	if err != nil {
		l.Error().Err(err).Msgf("PutBorrower(ctx, %+v)", p)
		return mapError(err)
	}

	return nil
}

// Rows are seeded for every supported currency by the migrations, so the lock
// below always has a row to hold.
const getReserveQuery = `
SELECT currency, pool, interest
FROM reserves
WHERE currency = $1
FOR UPDATE
`

// GetReserve returns the reserves of the currency, locking the row until the
// surrounding transaction ends.
func (r *RepoPGS) GetReserve(ctx context.Context, currency string) (domain.Reserve, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getReserveQuery, currency)

	res := domain.Reserve{
		Pool:     new(uint256.Int),
		Interest: new(uint256.Int),
	}

	err := row.Scan(&res.Currency, res.Pool, res.Interest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reserve{
				Currency: currency,
				Pool:     new(uint256.Int),
				Interest: new(uint256.Int),
			}, nil
		}

		l.Error().Err(err).Send()

		return domain.Reserve{}, errorspkg.ErrInternal
	}

	return res, nil
}

const putReserveQuery = `
INSERT INTO
	reserves (currency, pool, interest)
VALUES
	($1, $2, $3)
ON CONFLICT (currency) DO UPDATE
SET pool = EXCLUDED.pool,
	interest = EXCLUDED.interest
`

// PutReserve stores the reserves of the currency.
func (r *RepoPGS) PutReserve(ctx context.Context, res domain.Reserve) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, putReserveQuery, res.Currency, res.Pool, res.Interest); err != nil {
		l.Error().Err(err).Msgf("PutReserve(ctx, %+v)", res)
		return mapError(err)
	}

	return nil
}

const listReservesQuery = `
SELECT currency, pool, interest
FROM reserves
ORDER BY currency
`

// ListReserves returns the reserves of every currency.
func (r *RepoPGS) ListReserves(ctx context.Context) ([]domain.Reserve, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listReservesQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Reserve{}

	for rows.Next() {
		res := domain.Reserve{
			Pool:     new(uint256.Int),
			Interest: new(uint256.Int),
		}

		if err := rows.Scan(&res.Currency, res.Pool, res.Interest); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, res)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const createEntryQuery = `
INSERT INTO
	entries (account, currency, kind, amount)
VALUES
	($1, $2, $3, $4)
RETURNING id, account, currency, kind, amount, created_at
`

// CreateEntry appends an entry to the journal and returns it.
func (r *RepoPGS) CreateEntry(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createEntryQuery, arg.Account, arg.Currency, arg.Kind, arg.Amount)

	e := domain.Entry{Amount: new(uint256.Int)}

	err := row.Scan(
		&e.ID,
		&e.Account,
		&e.Currency,
		&e.Kind,
		e.Amount,
		&e.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Msgf("CreateEntry(ctx, %+v)", arg)
		return domain.Entry{}, errorspkg.ErrInternal
	}

	return e, nil
}

const listEntriesQuery = `
SELECT id, account, currency, kind, amount, created_at
FROM entries
WHERE account = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// ListEntries returns the specified number of entries for the given account.
func (r *RepoPGS) ListEntries(ctx context.Context, account string, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listEntriesQuery, account, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e := domain.Entry{Amount: new(uint256.Int)}
		if err := rows.Scan(&e.ID, &e.Account, &e.Currency, &e.Kind, e.Amount, &e.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
