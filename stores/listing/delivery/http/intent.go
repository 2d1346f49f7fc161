package http

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/padx/goapi/base/pricefmt"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/listing"
	"github.com/padx/goapi/domain/txn"
	"github.com/padx/goapi/service/chain/contract"
)

// IntentBuilder turns validated requests into transaction intents. All
// calldata encoding lives behind the contract wrapper; this layer only
// decides which call, which spend and which sender.
type IntentBuilder struct {
	launchpad contract.LaunchpadContract
}

func NewIntentBuilder(launchpad contract.LaunchpadContract) *IntentBuilder {
	return &IntentBuilder{launchpad: launchpad}
}

// List seeds a new listing. The seller escrows the listed token, so the
// spend is the full listed amount against the token contract.
func (b *IntentBuilder) List(p *listPayload, amount, price *big.Int) (*txn.Intent, error) {
	data, err := b.launchpad.ListTokenCalldata(
		domain.Address(p.TokenAddress),
		amount,
		price,
		domain.Address(p.PaymentToken),
		p.EndTime,
		p.ReferralActive,
		p.ReferralPercent,
	)
	if err != nil {
		return nil, err
	}
	return &txn.Intent{
		Kind: txn.KindList,
		From: domain.Address(p.Wallet).ToLower(),
		To:   b.launchpad.Address(),
		Data: data,
		Spend: &txn.Spend{
			Token:  domain.Address(p.TokenAddress).ToLower(),
			Amount: amount,
		},
	}, nil
}

// Buy purchases amount raw tokens from the listing. The spend is the
// fixed-price cost in the payment token; bonding-curve listings price
// through the contract's current-price view instead.
func (b *IntentBuilder) Buy(v *listing.View, wallet domain.Address, amount *big.Int, code domain.ReferralCode) (*txn.Intent, error) {
	data, err := b.launchpad.BuyTokenCalldata(v.Id, amount, code)
	if err != nil {
		return nil, err
	}

	var cost *big.Int
	if v.Model == listing.PricingBondingCurve && v.CurrentPrice != nil {
		// current price is already in payment-token units per whole token
		cost = new(big.Int).Mul(amount, v.CurrentPrice)
		cost.Div(cost, pow10(v.Token.Decimals))
	} else {
		cost = pricefmt.FixedCost(amount, v.PricePerShare, v.Payment.Decimals)
	}
	if cost.Sign() <= 0 {
		return nil, xerrors.Errorf("zero cost for amount %s on listing %d", amount, v.Id)
	}

	return &txn.Intent{
		Kind:      txn.KindBuy,
		ListingId: v.Id,
		From:      wallet.ToLower(),
		To:        b.launchpad.Address(),
		Data:      data,
		Spend: &txn.Spend{
			Token:  v.PaymentToken,
			Amount: cost,
		},
	}, nil
}

// Simple covers the id-only mutations. None of them move tokens into
// the contract, so no spend and no allowance pass.
func (b *IntentBuilder) Simple(kind txn.Kind, id domain.ListingId, wallet domain.Address) (*txn.Intent, error) {
	var (
		data []byte
		err  error
	)
	switch kind {
	case txn.KindCancel:
		data, err = b.launchpad.CancelListingCalldata(id)
	case txn.KindClaimRefund:
		data, err = b.launchpad.ClaimRefundCalldata(id)
	case txn.KindClaimTokens:
		data, err = b.launchpad.ClaimTokensCalldata(id)
	case txn.KindWithdrawUnsold:
		data, err = b.launchpad.WithdrawUnsoldTokensCalldata(id)
	case txn.KindClaimPoolFunds:
		data, err = b.launchpad.ClaimPoolFundsCalldata(id)
	default:
		return nil, xerrors.Errorf("unsupported action kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return &txn.Intent{
		Kind:      kind,
		ListingId: id,
		From:      wallet.ToLower(),
		To:        b.launchpad.Address(),
		Data:      data,
	}, nil
}

// Withdraw builds the operator sweep calls for funds stuck past the
// withdraw delay.
func (b *IntentBuilder) Withdraw(kind txn.Kind, token domain.Address, amount *big.Int, to domain.Address, wallet domain.Address) (*txn.Intent, error) {
	var (
		data []byte
		err  error
	)
	switch kind {
	case txn.KindWithdrawPaymentTokens:
		data, err = b.launchpad.WithdrawPaymentTokensCalldata(token, amount, to)
	case txn.KindWithdrawTokens:
		data, err = b.launchpad.WithdrawTokensCalldata(token, amount, to)
	default:
		return nil, xerrors.Errorf("unsupported withdraw kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return &txn.Intent{
		Kind: kind,
		From: wallet.ToLower(),
		To:   b.launchpad.Address(),
		Data: data,
	}, nil
}

func pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
