package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/txn"
	mContract "github.com/padx/goapi/service/chain/contract/mocks"
	mChain "github.com/padx/goapi/service/chain/mocks"
	mWallet "github.com/padx/goapi/service/wallet/mocks"
)

var (
	walletAddr   = domain.Address("0x00000000000000000000000000000000000000cc")
	launchpad    = domain.Address("0x00000000000000000000000000000000000000aa")
	paymentToken = domain.Address("0x00000000000000000000000000000000000000dd")
)

type txnSuite struct {
	suite.Suite

	ctx        bCtx.Ctx
	signer     *mWallet.Signer
	transactor *mChain.Transactor
	erc20      *mContract.Erc20Contract
	uc         txn.UseCase
}

func (s *txnSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.signer = &mWallet.Signer{}
	s.transactor = &mChain.Transactor{}
	s.erc20 = &mContract.Erc20Contract{}

	s.signer.On("Address").Return(walletAddr)
	s.transactor.On("Signer").Return(s.signer)

	s.uc = NewTxnUseCase(&TxnUseCaseCfg{
		ChainId:    1,
		Transactor: s.transactor,
		Erc20:      s.erc20,
	})
}

func TestTxnSuite(t *testing.T) {
	suite.Run(t, new(txnSuite))
}

func successfulReceipt() *types.Receipt {
	return &types.Receipt{
		Status:  types.ReceiptStatusSuccessful,
		GasUsed: 21000,
	}
}

func buyIntent(amount *big.Int) *txn.Intent {
	return &txn.Intent{
		Kind:      txn.KindBuy,
		ListingId: 1,
		From:      walletAddr,
		To:        launchpad,
		Data:      []byte{0xbb},
		Spend: &txn.Spend{
			Token:  paymentToken,
			Amount: amount,
		},
	}
}

func (s *txnSuite) TestNoSpendSkipsAllowanceEntirely() {
	to := common.HexToAddress(string(launchpad))
	s.transactor.On("EstimateGas", mock.Anything, to, (*big.Int)(nil), []byte{0xcc}).Return(uint64(50000), nil).Once()
	s.transactor.On("Send", mock.Anything, to, (*big.Int)(nil), []byte{0xcc}, uint64(50000)).Return(domain.TxHash("0xh1"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xh1")).Return(successfulReceipt(), nil).Once()

	receipt, err := s.uc.Execute(s.ctx, &txn.Intent{
		Kind: txn.KindCancel,
		From: walletAddr,
		To:   launchpad,
		Data: []byte{0xcc},
	})
	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xh1"), receipt.TxHash)
	s.erc20.AssertNotCalled(s.T(), "Allowance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.erc20.AssertNotCalled(s.T(), "ApproveCalldata", mock.Anything, mock.Anything)
}

func (s *txnSuite) TestSufficientAllowanceSkipsApproval() {
	amount := big.NewInt(1000)
	s.erc20.On("BalanceOf", mock.Anything, int32(1), paymentToken, walletAddr).Return(big.NewInt(5000), nil).Once()
	s.erc20.On("Allowance", mock.Anything, int32(1), paymentToken, walletAddr, launchpad).Return(big.NewInt(1000), nil).Once()

	to := common.HexToAddress(string(launchpad))
	s.transactor.On("EstimateGas", mock.Anything, to, (*big.Int)(nil), []byte{0xbb}).Return(uint64(90000), nil).Once()
	s.transactor.On("Send", mock.Anything, to, (*big.Int)(nil), []byte{0xbb}, uint64(90000)).Return(domain.TxHash("0xh2"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xh2")).Return(successfulReceipt(), nil).Once()

	_, err := s.uc.Execute(s.ctx, buyIntent(amount))
	s.Require().NoError(err)
	s.erc20.AssertNotCalled(s.T(), "ApproveCalldata", mock.Anything, mock.Anything)
}

func (s *txnSuite) TestShortAllowanceApprovesBeforeBuy() {
	amount := big.NewInt(1000)
	s.erc20.On("BalanceOf", mock.Anything, int32(1), paymentToken, walletAddr).Return(big.NewInt(5000), nil).Once()
	// first read is short, second read after approval covers the spend
	s.erc20.On("Allowance", mock.Anything, int32(1), paymentToken, walletAddr, launchpad).Return(big.NewInt(0), nil).Once()
	s.erc20.On("Allowance", mock.Anything, int32(1), paymentToken, walletAddr, launchpad).Return(domain.MaxUint256, nil).Once()
	s.erc20.On("ApproveCalldata", launchpad, domain.MaxUint256).Return([]byte{0xaa}, nil).Once()

	tokenAddr := common.HexToAddress(string(paymentToken))
	s.transactor.On("EstimateGas", mock.Anything, tokenAddr, (*big.Int)(nil), []byte{0xaa}).Return(uint64(46000), nil).Once()
	s.transactor.On("Send", mock.Anything, tokenAddr, (*big.Int)(nil), []byte{0xaa}, uint64(46000)).Return(domain.TxHash("0xapprove"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xapprove")).Return(successfulReceipt(), nil).Once()

	to := common.HexToAddress(string(launchpad))
	s.transactor.On("EstimateGas", mock.Anything, to, (*big.Int)(nil), []byte{0xbb}).Return(uint64(90000), nil).Once()
	s.transactor.On("Send", mock.Anything, to, (*big.Int)(nil), []byte{0xbb}, uint64(90000)).Return(domain.TxHash("0xbuy"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xbuy")).Return(successfulReceipt(), nil).Once()

	receipt, err := s.uc.Execute(s.ctx, buyIntent(amount))
	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xbuy"), receipt.TxHash)
	s.transactor.AssertExpectations(s.T())
	s.erc20.AssertExpectations(s.T())
}

func (s *txnSuite) TestApprovalRevertBlocksBuy() {
	amount := big.NewInt(1000)
	s.erc20.On("BalanceOf", mock.Anything, int32(1), paymentToken, walletAddr).Return(big.NewInt(5000), nil).Once()
	s.erc20.On("Allowance", mock.Anything, int32(1), paymentToken, walletAddr, launchpad).Return(big.NewInt(0), nil).Once()
	s.erc20.On("ApproveCalldata", launchpad, domain.MaxUint256).Return([]byte{0xaa}, nil).Once()

	tokenAddr := common.HexToAddress(string(paymentToken))
	s.transactor.On("EstimateGas", mock.Anything, tokenAddr, (*big.Int)(nil), []byte{0xaa}).Return(uint64(46000), nil).Once()
	s.transactor.On("Send", mock.Anything, tokenAddr, (*big.Int)(nil), []byte{0xaa}, uint64(46000)).Return(domain.TxHash("0xapprove"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xapprove")).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

	_, err := s.uc.Execute(s.ctx, buyIntent(amount))
	s.Require().ErrorIs(err, domain.ErrInsufficientAllowance)
	// the dependent buy never went out
	s.transactor.AssertNotCalled(s.T(), "Send", mock.Anything, common.HexToAddress(string(launchpad)), mock.Anything, mock.Anything, mock.Anything)
}

func (s *txnSuite) TestInsufficientBalance() {
	amount := big.NewInt(1000)
	s.erc20.On("BalanceOf", mock.Anything, int32(1), paymentToken, walletAddr).Return(big.NewInt(10), nil).Once()

	_, err := s.uc.Execute(s.ctx, buyIntent(amount))
	s.Require().ErrorIs(err, domain.ErrInsufficientBalance)
	s.erc20.AssertNotCalled(s.T(), "Allowance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *txnSuite) TestStaleWalletAddress() {
	intent := buyIntent(big.NewInt(1000))
	intent.From = domain.Address("0x00000000000000000000000000000000000000ee")

	_, err := s.uc.Execute(s.ctx, intent)
	s.Require().ErrorIs(err, domain.ErrStaleWalletAddress)
	s.erc20.AssertNotCalled(s.T(), "BalanceOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *txnSuite) TestRevertedTransaction() {
	to := common.HexToAddress(string(launchpad))
	s.transactor.On("EstimateGas", mock.Anything, to, (*big.Int)(nil), []byte{0xcc}).Return(uint64(50000), nil).Once()
	s.transactor.On("Send", mock.Anything, to, (*big.Int)(nil), []byte{0xcc}, uint64(50000)).Return(domain.TxHash("0xh3"), nil).Once()
	s.transactor.On("WaitMined", mock.Anything, domain.TxHash("0xh3")).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

	_, err := s.uc.Execute(s.ctx, &txn.Intent{
		Kind: txn.KindCancel,
		From: walletAddr,
		To:   launchpad,
		Data: []byte{0xcc},
	})
	s.Require().ErrorIs(err, domain.ErrContractReverted)
}

func (s *txnSuite) TestProviderErrorClassified() {
	to := common.HexToAddress(string(launchpad))
	s.transactor.On("EstimateGas", mock.Anything, to, (*big.Int)(nil), []byte{0xcc}).Return(uint64(0), errors.New("execution reverted: not seller")).Once()

	_, err := s.uc.Execute(s.ctx, &txn.Intent{
		Kind: txn.KindCancel,
		From: walletAddr,
		To:   launchpad,
		Data: []byte{0xcc},
	})
	s.Require().ErrorIs(err, domain.ErrContractReverted)
}
