package contract

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	baseabi "github.com/padx/goapi/base/abi"
	"github.com/padx/goapi/domain"
)

func testLaunchpad() *Launchpad {
	return NewLaunchpad(nil, 1, domain.Address("0x00000000000000000000000000000000000000aa"))
}

func TestCalldataCarriesMethodSelector(t *testing.T) {
	l := testLaunchpad()

	tests := []struct {
		method string
		build  func() ([]byte, error)
	}{
		{"buyToken", func() ([]byte, error) {
			return l.BuyTokenCalldata(1, big.NewInt(10), "")
		}},
		{"cancelListing", func() ([]byte, error) { return l.CancelListingCalldata(1) }},
		{"generateBuyerReferralCode", func() ([]byte, error) { return l.GenerateBuyerReferralCodeCalldata(1) }},
		{"claimRefund", func() ([]byte, error) { return l.ClaimRefundCalldata(1) }},
		{"claimTokens", func() ([]byte, error) { return l.ClaimTokensCalldata(1) }},
		{"withdrawUnsoldTokens", func() ([]byte, error) { return l.WithdrawUnsoldTokensCalldata(1) }},
		{"claimPoolFunds", func() ([]byte, error) { return l.ClaimPoolFundsCalldata(1) }},
	}
	for _, t0 := range tests {
		data, err := t0.build()
		require.NoError(t, err, t0.method)
		require.Equal(t, baseabi.LaunchpadABI.Methods[t0.method].ID, data[:4], t0.method)
	}
}

func TestListTokenCalldata(t *testing.T) {
	l := testLaunchpad()
	data, err := l.ListTokenCalldata(
		domain.Address("0x0000000000000000000000000000000000000022"),
		big.NewInt(1000),
		big.NewInt(2),
		domain.Address("0x0000000000000000000000000000000000000033"),
		1717243200,
		true,
		10,
	)
	require.NoError(t, err)
	require.Equal(t, baseabi.LaunchpadABI.Methods["listToken"].ID, data[:4])

	args, err := baseabi.LaunchpadABI.Methods["listToken"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), args[1])
	require.Equal(t, true, args[5])
}

func TestReferralCodeRoundTrip(t *testing.T) {
	var raw [32]byte
	raw[0] = 0xde
	raw[31] = 0x01

	code := toReferralCode(raw)
	require.NotEmpty(t, code)
	require.Equal(t, raw, fromReferralCode(code))
}

func TestEmptyReferralCode(t *testing.T) {
	var zero [32]byte
	require.Equal(t, domain.ReferralCode(""), toReferralCode(zero))
	require.Equal(t, zero, fromReferralCode(""))
}
