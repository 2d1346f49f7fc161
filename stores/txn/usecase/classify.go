package usecase

import (
	"errors"
	"strings"

	"golang.org/x/xerrors"

	"github.com/padx/goapi/domain"
)

// classify maps raw provider and signer errors onto the stable failure
// taxonomy, keeping any contract-provided reason in the message.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		domain.ErrUserRejected,
		domain.ErrInsufficientBalance,
		domain.ErrInsufficientAllowance,
		domain.ErrGasEstimationFailed,
		domain.ErrContractReverted,
		domain.ErrStaleWalletAddress,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user denied") || strings.Contains(msg, "user rejected"):
		return xerrors.Errorf("%w: %s", domain.ErrUserRejected, err.Error())
	case strings.Contains(msg, "insufficient funds") || strings.Contains(msg, "insufficient balance"):
		return xerrors.Errorf("%w: %s", domain.ErrInsufficientBalance, err.Error())
	case strings.Contains(msg, "execution reverted") || strings.Contains(msg, "revert"):
		return xerrors.Errorf("%w: %s", domain.ErrContractReverted, err.Error())
	default:
		return err
	}
}
