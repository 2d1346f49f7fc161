package pricefmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bigFromString(t *testing.T, s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestToDisplayString(t *testing.T) {
	tests := []struct {
		desc     string
		raw      string
		decimals int32
		exp      string
	}{
		{"one token at 18 decimals", "1000000000000000000", 18, "1"},
		{"fractional value", "1500000000000000000", 18, "1.5"},
		{"six decimal payment token", "2500000", 6, "2.5"},
		{"zero", "0", 18, "0"},
		{"dust below one unit", "1", 18, "0.000000000000000001"},
	}
	for _, t0 := range tests {
		raw := bigFromString(t, t0.raw)
		require.Equal(t, t0.exp, ToDisplayString(raw, t0.decimals), t0.desc)
	}

	require.Equal(t, "0", ToDisplayString(nil, 18))
}

func TestToRaw(t *testing.T) {
	tests := []struct {
		desc     string
		display  string
		decimals int32
		exp      string
		expErr   error
	}{
		{"integer amount", "1", 18, "1000000000000000000", nil},
		{"fractional amount", "1.5", 18, "1500000000000000000", nil},
		{"comma decimal separator", "1,5", 18, "1500000000000000000", nil},
		{"whitespace trimmed", " 2.5 ", 6, "2500000", nil},
		{"full precision", "0.000000000000000001", 18, "1", nil},
		{"empty", "", 18, "", ErrMalformedAmount},
		{"double separator", "1.2.3", 18, "", ErrMalformedAmount},
		{"mixed separators", "1,2.3", 18, "", ErrMalformedAmount},
		{"not a number", "abc", 18, "", ErrMalformedAmount},
		{"negative", "-1", 18, "", ErrNegativeAmount},
		{"too many fractional digits", "0.0000001", 6, "", ErrPrecisionExceeded},
	}
	for _, t0 := range tests {
		got, err := ToRaw(t0.display, t0.decimals)
		if t0.expErr != nil {
			require.ErrorIs(t, err, t0.expErr, t0.desc)
			continue
		}
		require.NoError(t, err, t0.desc)
		require.Equal(t, t0.exp, got.String(), t0.desc)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"1", "1000000000000000000", "123456789012345678", "2500000"} {
		v := bigFromString(t, raw)
		back, err := ToRaw(ToDisplayString(v, 18), 18)
		require.NoError(t, err)
		require.Equal(t, v.String(), back.String())
	}
}

func TestFixedCost(t *testing.T) {
	tests := []struct {
		desc            string
		amount          string
		price           string
		paymentDecimals int32
		exp             string
	}{
		{
			// 10 tokens at 2.0 against an 18-decimal payment token
			desc:            "18 decimal payment token",
			amount:          "10000000000000000000",
			price:           "2000000000000000000",
			paymentDecimals: 18,
			exp:             "20000000000000000000",
		},
		{
			// same trade against USDC-like 6 decimals needs the 1e12 correction
			desc:            "6 decimal payment token",
			amount:          "10000000000000000000",
			price:           "2000000000000000000",
			paymentDecimals: 6,
			exp:             "20000000",
		},
		{
			desc:            "fractional amount",
			amount:          "1500000000000000000",
			price:           "2000000000000000000",
			paymentDecimals: 6,
			exp:             "3000000",
		},
		{
			desc:            "zero amount",
			amount:          "0",
			price:           "2000000000000000000",
			paymentDecimals: 6,
			exp:             "0",
		},
	}
	for _, t0 := range tests {
		amount := bigFromString(t, t0.amount)
		price := bigFromString(t, t0.price)
		require.Equal(t, t0.exp, FixedCost(amount, price, t0.paymentDecimals).String(), t0.desc)
	}

	require.Equal(t, "0", FixedCost(nil, big.NewInt(1), 18).String())
	require.Equal(t, "0", FixedCost(big.NewInt(1), nil, 18).String())
}

func TestFixedCostDisplay(t *testing.T) {
	amount := bigFromString(t, "10000000000000000000")
	price := bigFromString(t, "2000000000000000000")
	require.Equal(t, "20", FixedCostDisplay(amount, price, 6).String())
	require.Equal(t, "20", FixedCostDisplay(amount, price, 18).String())
}

func TestCurrentPriceDisplay(t *testing.T) {
	require.Equal(t, "1.25", CurrentPriceDisplay(bigFromString(t, "1250000"), 6).String())
	require.Equal(t, "0", CurrentPriceDisplay(nil, 6).String())
}
