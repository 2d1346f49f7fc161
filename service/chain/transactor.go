package chain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/padx/goapi/base/backoff"
	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/service/wallet"
)

// gasBufferPercent is the safety margin applied on top of every gas
// estimate before submission.
const gasBufferPercent = 20

const defaultReceiptPollInterval = 2 * time.Second

type TransactorCfg struct {
	ChainId             domain.ChainId
	Client              domain.EthClientRepo
	Signer              wallet.Signer
	ReceiptPollInterval time.Duration
}

// Transactor owns the write path: gas estimation with a safety buffer,
// signing, submission and confirmation. One confirmation is considered
// final; reorg handling is out of scope.
type Transactor interface {
	Signer() wallet.Signer
	EstimateGas(bCtx.Ctx, common.Address, *big.Int, []byte) (uint64, error)
	Send(bCtx.Ctx, common.Address, *big.Int, []byte, uint64) (domain.TxHash, error)
	WaitMined(bCtx.Ctx, domain.TxHash) (*types.Receipt, error)
}

type transactorImpl struct {
	chainId      *big.Int
	client       domain.EthClientRepo
	signer       wallet.Signer
	pollInterval time.Duration
}

func NewTransactor(cfg *TransactorCfg) Transactor {
	interval := cfg.ReceiptPollInterval
	if interval == 0 {
		interval = defaultReceiptPollInterval
	}
	return &transactorImpl{
		chainId:      big.NewInt(int64(cfg.ChainId)),
		client:       cfg.Client,
		signer:       cfg.Signer,
		pollInterval: interval,
	}
}

func (t *transactorImpl) Signer() wallet.Signer {
	return t.signer
}

// EstimateGas runs estimation against the final call arguments and
// applies the buffer. An estimation failure usually means the call
// would revert, so the underlying reason is kept in the returned error.
func (t *transactorImpl) EstimateGas(ctx bCtx.Ctx, to common.Address, value *big.Int, data []byte) (uint64, error) {
	from := common.HexToAddress(t.signer.Address().ToLowerStr())
	msg := ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	}
	gas, err := t.client.EstimateGas(ctx, msg)
	if err != nil {
		ctx.WithFields(log.Fields{
			"to":  to.Hex(),
			"err": err,
		}).Error("client.EstimateGas failed")
		return 0, xerrors.Errorf("%w: %s", domain.ErrGasEstimationFailed, err.Error())
	}
	return gas * (100 + gasBufferPercent) / 100, nil
}

func (t *transactorImpl) Send(ctx bCtx.Ctx, to common.Address, value *big.Int, data []byte, gasLimit uint64) (domain.TxHash, error) {
	from := common.HexToAddress(t.signer.Address().ToLowerStr())
	nonce, err := t.client.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return "", err
	}
	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return "", err
	}
	if value == nil {
		value = domain.Big0
	}
	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signed, err := t.signer.SignTx(ctx, tx, t.chainId)
	if err != nil {
		return "", err
	}
	if err := t.client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{
			"txHash": signed.Hash().Hex(),
			"err":    err,
		}).Error("client.SendTransaction failed")
		return "", err
	}
	return domain.TxHash(signed.Hash().Hex()).ToLower(), nil
}

// WaitMined polls for the receipt until the transaction lands or the
// context is cancelled. No explicit timeout here; an in-flight
// transaction is never retracted, callers may only stop waiting.
func (t *transactorImpl) WaitMined(ctx bCtx.Ctx, hash domain.TxHash) (*types.Receipt, error) {
	h := common.HexToHash(string(hash))
	bo := backoff.NewLinear(t.pollInterval, 30*time.Second)
	for {
		receipt, err := t.client.TransactionReceipt(ctx, h)
		if err == nil {
			return receipt, nil
		}
		if err != ethereum.NotFound {
			ctx.WithFields(log.Fields{
				"txHash": hash,
				"err":    err,
			}).Warn("client.TransactionReceipt failed")
		}
		if err := bo.Backoff(ctx); err != nil {
			return nil, err
		}
	}
}
