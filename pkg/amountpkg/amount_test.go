package amountpkg

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func maxAmount() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    *uint256.Int
		wantErr error
	}{
		{name: "OK", input: "400", want: New(400)},
		{name: "Zero", input: "0", want: Zero()},
		{name: "TrailingZeroFraction", input: "12.000", want: New(12)},
		{name: "Max", input: maxAmount().Dec(), want: maxAmount()},
		{name: "Malformed", input: "!@#$", wantErr: ErrMalformed},
		{name: "Empty", input: "", wantErr: ErrMalformed},
		{name: "Negative", input: "-1", wantErr: ErrNegative},
		{name: "Fractional", input: "1.5", wantErr: ErrFractional},
		{
			name:    "TooBig",
			input:   "115792089237316195423570985008687907853269984665640564039457584007913129639936",
			wantErr: ErrOverflow,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want.Dec(), got.Dec())
		})
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	got, err := Add(New(100), New(300))
	require.NoError(t, err)
	require.Equal(t, uint64(400), got.Uint64())

	_, err = Add(maxAmount(), New(1))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestSub(t *testing.T) {
	t.Parallel()

	got, err := Sub(New(100), New(20))
	require.NoError(t, err)
	require.Equal(t, uint64(80), got.Uint64())

	got, err = Sub(New(20), New(20))
	require.NoError(t, err)
	require.True(t, got.IsZero())

	_, err = Sub(New(20), New(21))
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		principal uint64
		rate      uint8
		want      uint64
	}{
		{principal: 3000, rate: 10, want: 300},
		{principal: 999, rate: 10, want: 99},
		{principal: 1, rate: 99, want: 0},
		{principal: 7, rate: 100, want: 7},
		{principal: 12345, rate: 0, want: 0},
	}

	for _, tc := range testCases {
		got, err := Percent(New(tc.principal), tc.rate)
		require.NoError(t, err)
		require.Equal(t, tc.want, got.Uint64(), "Percent(%d, %d)", tc.principal, tc.rate)
	}

	_, err := Percent(maxAmount(), 2)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestIsPositive(t *testing.T) {
	t.Parallel()

	require.False(t, IsPositive(nil))
	require.False(t, IsPositive(Zero()))
	require.True(t, IsPositive(New(1)))
}

func TestValidAmount(t *testing.T) {
	t.Parallel()

	type request struct {
		Amount string `validate:"amount"`
	}

	v := validator.New()
	require.NoError(t, v.RegisterValidation("amount", ValidAmount))

	for _, ok := range []string{"0", "1", "400", maxAmount().Dec()} {
		require.NoError(t, v.Struct(request{Amount: ok}), ok)
	}

	for _, bad := range []string{"", "-1", "1.5", "abc", "115792089237316195423570985008687907853269984665640564039457584007913129639936"} {
		require.Error(t, v.Struct(request{Amount: bad}), bad)
	}
}
