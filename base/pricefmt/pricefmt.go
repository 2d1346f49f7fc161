package pricefmt

import (
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedAmount   = errors.New("malformed amount")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrPrecisionExceeded = errors.New("amount exceeds token precision")
)

// PriceStorageDecimals is the precision the contract stores
// pricePerShare at, independent of the payment token's own decimals.
const PriceStorageDecimals = 18

// ToDisplay converts a raw on-chain amount to its decimal
// representation. Raw amounts are integers scaled by the owning asset's
// decimal count.
func ToDisplay(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// ToDisplayString renders a raw amount as a fixed-point decimal string.
// Fixed-point, not binary floating point; amounts can carry up to 18
// fractional digits.
func ToDisplayString(raw *big.Int, decimals int32) string {
	return ToDisplay(raw, decimals).String()
}

// ToRaw parses a display amount back into raw units. Comma decimal
// separators are normalized before parsing. Malformed and negative
// inputs are rejected, as are amounts with more fractional digits than
// the asset can represent.
func ToRaw(display string, decimals int32) (*big.Int, error) {
	s := strings.TrimSpace(display)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || strings.Count(s, ".") > 1 {
		return nil, ErrMalformedAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrMalformedAmount
	}
	if d.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, ErrPrecisionExceeded
	}
	return scaled.BigInt(), nil
}

// FixedCost computes the raw payment cost of buying amountRaw tokens at
// priceRaw under the fixed-price model. The contract stores the price
// at 18-decimal precision regardless of the payment token, so the
// 1e18-scaled product is corrected by 10^(18-paymentDecimals); with a
// 6-decimal payment token that is an extra division by 1e12, with an
// 18-decimal one it is a no-op.
func FixedCost(amountRaw, priceRaw *big.Int, paymentDecimals int32) *big.Int {
	if amountRaw == nil || priceRaw == nil {
		return big.NewInt(0)
	}
	cost := new(big.Int).Mul(amountRaw, priceRaw)
	cost.Div(cost, pow10(PriceStorageDecimals))
	diff := PriceStorageDecimals - paymentDecimals
	switch {
	case diff > 0:
		cost.Div(cost, pow10(diff))
	case diff < 0:
		cost.Mul(cost, pow10(-diff))
	}
	return cost
}

// FixedCostDisplay is FixedCost rendered in payment-token display units.
func FixedCostDisplay(amountRaw, priceRaw *big.Int, paymentDecimals int32) decimal.Decimal {
	return ToDisplay(FixedCost(amountRaw, priceRaw, paymentDecimals), paymentDecimals)
}

// CurrentPriceDisplay scales a bonding-curve view value (current price,
// FDMC or market cap) by the payment token's decimals. The curve itself
// is never re-derived client-side; the contract view is authoritative.
func CurrentPriceDisplay(viewValue *big.Int, paymentDecimals int32) decimal.Decimal {
	return ToDisplay(viewValue, paymentDecimals)
}

func pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
