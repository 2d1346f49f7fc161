package usecase

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	"github.com/padx/goapi/base/metrics"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/txn"
	"github.com/padx/goapi/service/chain"
	"github.com/padx/goapi/service/chain/contract"
)

var metOnce sync.Once
var met metrics.Service

type TxnUseCaseCfg struct {
	ChainId    domain.ChainId
	Transactor chain.Transactor
	Erc20      contract.Erc20Contract
}

type impl struct {
	chainId    domain.ChainId
	transactor chain.Transactor
	erc20      contract.Erc20Contract
}

func NewTxnUseCase(cfg *TxnUseCaseCfg) txn.UseCase {
	metOnce.Do(func() {
		met = metrics.New("txn")
	})
	return &impl{
		chainId:    cfg.ChainId,
		transactor: cfg.Transactor,
		erc20:      cfg.Erc20,
	}
}

// Execute drives one mutating call through the full state machine:
// Idle -> (Approving | EstimatingGas) -> Submitted -> Confirmed/Failed.
// The chain stays the single source of truth; on success the caller is
// expected to trigger a listing refresh rather than have local state
// patched here.
func (u *impl) Execute(ctx bCtx.Ctx, intent *txn.Intent) (*txn.Receipt, error) {
	pending := &txn.Pending{
		Id:        uuid.NewString(),
		Kind:      intent.Kind,
		ListingId: intent.ListingId,
		State:     txn.StateIdle,
		StartedAt: time.Now(),
	}
	if intent.Spend != nil {
		pending.Amount = intent.Spend.Amount
	}
	ctx = bCtx.WithValues(ctx, map[string]interface{}{
		"txnId": pending.Id,
		"kind":  string(intent.Kind),
	})

	receipt, err := u.execute(ctx, intent, pending)
	if err != nil {
		pending.State = txn.StateFailed
		met.BumpSum("execute.failed", 1, "kind", string(intent.Kind))
		return nil, classify(err)
	}
	pending.State = txn.StateConfirmed
	met.BumpSum("execute.confirmed", 1, "kind", string(intent.Kind))
	met.BumpHistogram("execute.duration", time.Since(pending.StartedAt).Seconds(), "kind", string(intent.Kind))
	return receipt, nil
}

func (u *impl) execute(ctx bCtx.Ctx, intent *txn.Intent, pending *txn.Pending) (*txn.Receipt, error) {
	signerAddr := u.transactor.Signer().Address()
	if !intent.From.IsEmpty() && !signerAddr.Equals(intent.From) {
		ctx.WithFields(log.Fields{
			"intentFrom": intent.From,
			"signer":     signerAddr,
		}).Warn("signer address changed since intent was created")
		return nil, domain.ErrStaleWalletAddress
	}

	if intent.Spend != nil {
		pending.State = txn.StateApproving
		if err := u.ensureAllowance(ctx, intent, signerAddr); err != nil {
			return nil, err
		}
	}

	pending.State = txn.StateEstimatingGas
	to := common.HexToAddress(string(intent.To))
	gas, err := u.transactor.EstimateGas(ctx, to, intent.Value, intent.Data)
	if err != nil {
		return nil, err
	}
	pending.GasEstimate = gas

	pending.State = txn.StateSubmitted
	hash, err := u.transactor.Send(ctx, to, intent.Value, intent.Data, gas)
	if err != nil {
		return nil, err
	}
	ctx.WithFields(log.Fields{
		"txHash": hash,
		"gas":    gas,
	}).Info("transaction submitted")

	receipt, err := u.transactor.WaitMined(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, xerrors.Errorf("%w: tx %s", domain.ErrContractReverted, hash)
	}

	logs := make([]types.Log, 0, len(receipt.Logs))
	for _, l := range receipt.Logs {
		logs = append(logs, *l)
	}
	return &txn.Receipt{
		TxHash:  hash,
		GasUsed: receipt.GasUsed,
		Logs:    logs,
	}, nil
}

// ensureAllowance reads the live allowance and, when short, submits an
// unlimited approval and awaits its confirmation before the dependent
// call is allowed to proceed. Because the allowance comes from the
// chain each time, a retried call after a failed approval cannot
// double-approve.
func (u *impl) ensureAllowance(ctx bCtx.Ctx, intent *txn.Intent, owner domain.Address) error {
	spend := intent.Spend

	balance, err := u.erc20.BalanceOf(ctx, int32(u.chainId), spend.Token, owner)
	if err != nil {
		ctx.WithField("err", err).Error("erc20.BalanceOf failed")
		return err
	}
	if balance.Cmp(spend.Amount) < 0 {
		return xerrors.Errorf("%w: have %s, need %s", domain.ErrInsufficientBalance, balance, spend.Amount)
	}

	allowance, err := u.erc20.Allowance(ctx, int32(u.chainId), spend.Token, owner, intent.To)
	if err != nil {
		ctx.WithField("err", err).Error("erc20.Allowance failed")
		return err
	}
	if allowance.Cmp(spend.Amount) >= 0 {
		return nil
	}

	// approve the maximum representable amount to avoid repeated approvals
	data, err := u.erc20.ApproveCalldata(intent.To, domain.MaxUint256)
	if err != nil {
		return err
	}
	token := common.HexToAddress(string(spend.Token))
	gas, err := u.transactor.EstimateGas(ctx, token, nil, data)
	if err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrInsufficientAllowance, err.Error())
	}
	hash, err := u.transactor.Send(ctx, token, nil, data, gas)
	if err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrInsufficientAllowance, err.Error())
	}
	ctx.WithFields(log.Fields{
		"txHash": hash,
		"token":  spend.Token,
	}).Info("approval submitted")

	receipt, err := u.transactor.WaitMined(ctx, hash)
	if err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrInsufficientAllowance, err.Error())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return xerrors.Errorf("%w: approval tx %s reverted", domain.ErrInsufficientAllowance, hash)
	}

	// strict sequencing: the dependent call only goes out once the
	// refreshed allowance actually covers the spend
	allowance, err = u.erc20.Allowance(ctx, int32(u.chainId), spend.Token, owner, intent.To)
	if err != nil {
		return err
	}
	if allowance.Cmp(spend.Amount) < 0 {
		return xerrors.Errorf("%w: allowance %s after approval, need %s", domain.ErrInsufficientAllowance, allowance, spend.Amount)
	}
	return nil
}
