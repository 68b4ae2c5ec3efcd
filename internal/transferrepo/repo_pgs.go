// Package transferrepo manages repository layer of outbound transfers.
//
// A transfer row is the ledger's request to pay an account out of a pool.
// The host settles recorded transfers; recording one is what the ledger
// treats as executing it.
package transferrepo

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

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
	transfers (account, currency, amount)
VALUES
	($1, $2, $3)
RETURNING id, account, currency, amount, created_at
`

// Create records the transfer and then returns it.
//
// When ctx carries a transaction the row is written inside it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := dbpkg.Conn(ctx, r.db).QueryRowContext(ctx, createQuery, arg.Account, arg.Currency, arg.Amount)

	t := domain.Transfer{Amount: new(uint256.Int)}

	err := row.Scan(
		&t.ID,
		&t.Account,
		&t.Currency,
		t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "transfers_amount_check" {
			return domain.Transfer{}, domain.ErrInvalidAmount
		}

		return domain.Transfer{}, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, account, currency, amount, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := dbpkg.Conn(ctx, r.db).QueryRowContext(ctx, getQuery, id)

	t := domain.Transfer{Amount: new(uint256.Int)}

	err := row.Scan(
		&t.ID,
		&t.Account,
		&t.Currency,
		t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}

		l.Error().Err(err).Send()

		return domain.Transfer{}, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT
	id, account, currency, amount, created_at
FROM transfers
WHERE account = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the transfers paid to the account.
func (r *RepoPGS) List(ctx context.Context, account string, limit, offset int32) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := dbpkg.Conn(ctx, r.db).QueryContext(ctx, listQuery, account, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		t := domain.Transfer{Amount: new(uint256.Int)}
		if err := rows.Scan(
			&t.ID,
			&t.Account,
			&t.Currency,
			t.Amount,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
