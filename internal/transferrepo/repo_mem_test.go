package transferrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/amountpkg"
	"github.com/go-petr/bitlease/pkg/currencypkg"
	"github.com/go-petr/bitlease/pkg/randompkg"
)

func TestRepoMemCreateGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepoMem()

	arg := domain.CreateTransferParams{
		Account:  randompkg.Owner(),
		Currency: currencypkg.USDT,
		Amount:   amountpkg.New(20),
	}

	created, err := repo.Create(ctx, arg)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, arg.Account, created.Account)
	require.Equal(t, "20", created.Amount.Dec())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.Get(ctx, created.ID+1)
	require.ErrorIs(t, err, domain.ErrTransferNotFound)
}

func TestRepoMemCreateZeroAmount(t *testing.T) {
	t.Parallel()

	_, err := NewRepoMem().Create(context.Background(), domain.CreateTransferParams{
		Account:  "alice",
		Currency: currencypkg.USDT,
		Amount:   amountpkg.Zero(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRepoMemList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepoMem()

	var want []domain.Transfer

	for i := 0; i < 6; i++ {
		tr, err := repo.Create(ctx, domain.CreateTransferParams{
			Account:  "alice",
			Currency: currencypkg.ETH,
			Amount:   randompkg.AmountBetween(1, 10),
		})
		require.NoError(t, err)

		want = append(want, tr)

		_, err = repo.Create(ctx, domain.CreateTransferParams{
			Account:  "bob",
			Currency: currencypkg.ETH,
			Amount:   amountpkg.New(1),
		})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, "alice", 3, 2)
	require.NoError(t, err)
	require.Equal(t, want[2:5], got)
}
