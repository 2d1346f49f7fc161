package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/service/wallet"
)

// fakeEthClient fakes the narrow rpc surface the transactor touches.
type fakeEthClient struct {
	domain.EthClientRepo

	estimate     uint64
	estimateErr  error
	nonce        uint64
	gasPrice     *big.Int
	sendErr      error
	sent         *types.Transaction
	receipt      *types.Receipt
	receiptTries int32
}

func (f *fakeEthClient) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	return f.estimate, f.estimateErr
}

func (f *fakeEthClient) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeEthClient) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

func (f *fakeEthClient) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.sent = tx
	return f.sendErr
}

func (f *fakeEthClient) TransactionReceipt(_ context.Context, _ common.Hash) (*types.Receipt, error) {
	if atomic.AddInt32(&f.receiptTries, -1) > 0 {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func testKey(t *testing.T) *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func testTransactor(t *testing.T, client *fakeEthClient) Transactor {
	key := testKey(t)
	signer, err := wallet.NewPrivateKeySigner(common.Bytes2Hex(crypto.FromECDSA(key)))
	require.NoError(t, err)
	return NewTransactor(&TransactorCfg{
		ChainId:             1,
		Client:              client,
		Signer:              signer,
		ReceiptPollInterval: time.Millisecond,
	})
}

func TestEstimateGasAppliesBuffer(t *testing.T) {
	tr := testTransactor(t, &fakeEthClient{estimate: 100000})

	gas, err := tr.EstimateGas(bCtx.Background(), common.Address{}, nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 120000, gas)
}

func TestEstimateGasFailure(t *testing.T) {
	tr := testTransactor(t, &fakeEthClient{estimateErr: errors.New("execution reverted")})

	_, err := tr.EstimateGas(bCtx.Background(), common.Address{}, nil, nil)
	require.ErrorIs(t, err, domain.ErrGasEstimationFailed)
	require.Contains(t, err.Error(), "execution reverted")
}

func TestSendSignsAndSubmits(t *testing.T) {
	client := &fakeEthClient{nonce: 7, gasPrice: big.NewInt(1_000_000_000)}
	tr := testTransactor(t, client)

	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	hash, err := tr.Send(bCtx.Background(), to, nil, []byte{0x01}, 120000)
	require.NoError(t, err)

	require.NotNil(t, client.sent)
	require.EqualValues(t, 7, client.sent.Nonce())
	require.EqualValues(t, 120000, client.sent.Gas())
	require.Equal(t, domain.TxHash(client.sent.Hash().Hex()).ToLower(), hash)
}

func TestWaitMinedPollsUntilFound(t *testing.T) {
	want := &types.Receipt{Status: types.ReceiptStatusSuccessful}
	client := &fakeEthClient{receipt: want, receiptTries: 3}
	tr := testTransactor(t, client)

	got, err := tr.WaitMined(bCtx.Background(), domain.TxHash("0xabc"))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWaitMinedStopsOnCancel(t *testing.T) {
	client := &fakeEthClient{receiptTries: 1 << 30}
	tr := testTransactor(t, client)

	ctx, cancel := bCtx.WithTimeout(bCtx.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tr.WaitMined(ctx, domain.TxHash("0xabc"))
	require.Error(t, err)
}
