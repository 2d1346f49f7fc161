package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/padx/goapi/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		exp  error
	}{
		{
			desc: "nil passes through",
			err:  nil,
			exp:  nil,
		},
		{
			desc: "already classified error untouched",
			err:  xerrors.Errorf("%w: have 1, need 2", domain.ErrInsufficientBalance),
			exp:  domain.ErrInsufficientBalance,
		},
		{
			desc: "metamask style rejection",
			err:  errors.New("MetaMask Tx Signature: User denied transaction signature."),
			exp:  domain.ErrUserRejected,
		},
		{
			desc: "eip-1193 style rejection",
			err:  errors.New("user rejected the request"),
			exp:  domain.ErrUserRejected,
		},
		{
			desc: "node insufficient funds",
			err:  errors.New("insufficient funds for gas * price + value"),
			exp:  domain.ErrInsufficientBalance,
		},
		{
			desc: "execution reverted",
			err:  errors.New("execution reverted: listing expired"),
			exp:  domain.ErrContractReverted,
		},
	}
	for _, t0 := range tests {
		got := classify(t0.err)
		if t0.exp == nil {
			require.NoError(t, got, t0.desc)
			continue
		}
		require.ErrorIs(t, got, t0.exp, t0.desc)
	}
}

func TestClassifyUnknownErrorPassesThrough(t *testing.T) {
	err := errors.New("connection refused")
	require.Equal(t, err, classify(err))
}

func TestClassifyKeepsReason(t *testing.T) {
	got := classify(errors.New("execution reverted: listing expired"))
	require.Contains(t, got.Error(), "listing expired")
}
