package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	baseabi "github.com/padx/goapi/base/abi"
	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/referral"
	mReferral "github.com/padx/goapi/domain/referral/mocks"
	"github.com/padx/goapi/domain/txn"
	mTxn "github.com/padx/goapi/domain/txn/mocks"
	mContract "github.com/padx/goapi/service/chain/contract/mocks"
)

const launchpadAddr = "0x00000000000000000000000000000000000000aa"

type referralSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	repo      *mReferral.Repo
	txn       *mTxn.UseCase
	launchpad *mContract.LaunchpadContract
	uc        referral.UseCase
}

func (s *referralSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mReferral.Repo{}
	s.txn = &mTxn.UseCase{}
	s.launchpad = &mContract.LaunchpadContract{}
	s.uc = NewReferralUseCase(&ReferralUseCaseCfg{
		Repo:      s.repo,
		Txn:       s.txn,
		Launchpad: s.launchpad,
	})
}

func TestReferralSuite(t *testing.T) {
	suite.Run(t, new(referralSuite))
}

func codeBytes(b byte) [32]byte {
	var code [32]byte
	code[31] = b
	return code
}

func receiptWith(contractAddr string, id uint64, code [32]byte) *txn.Receipt {
	return &txn.Receipt{
		TxHash: "0xhash",
		Logs: []types.Log{
			{
				Address: common.HexToAddress(contractAddr),
				Topics: []common.Hash{
					baseabi.ReferralCodeGeneratedID,
					common.BigToHash(new(big.Int).SetUint64(id)),
					common.HexToHash("0xbuyer"),
				},
				Data: code[:],
			},
		},
	}
}

func (s *referralSuite) TestGenerateOnMiss() {
	wallet := domain.Address("0xWALLET").ToLower()
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound).Once()
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(7)).Return([]byte{0x01}, nil).Once()
	s.txn.On("Execute", mock.Anything, mock.MatchedBy(func(i *txn.Intent) bool {
		return i.Kind == txn.KindGenerateReferral && i.ListingId == 7 && i.Spend == nil
	})).Return(receiptWith(launchpadAddr, 7, codeBytes(0xab)), nil).Once()
	s.repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	code, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().NoError(err)
	s.Equal(domain.ReferralCode("0x"+common.Bytes2Hex(append(make([]byte, 31), 0xab))), code)
	s.txn.AssertExpectations(s.T())
	s.repo.AssertExpectations(s.T())
}

func (s *referralSuite) TestCachedCodeSkipsChain() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(&referral.Wallet{
		Address: wallet,
		Entries: []referral.Entry{{ListingId: 7, Code: "0xcafe"}},
	}, nil).Once()

	code, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().NoError(err)
	s.Equal(domain.ReferralCode("0xcafe"), code)

	// second call hits the in-memory cache, not even the repo
	code, err = s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().NoError(err)
	s.Equal(domain.ReferralCode("0xcafe"), code)

	s.txn.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything)
	s.repo.AssertExpectations(s.T())
}

func (s *referralSuite) TestConcurrentRequestsShareOneGeneration() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound)
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(7)).Return([]byte{0x01}, nil)
	s.txn.On("Execute", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(30 * time.Millisecond) }).
		Return(receiptWith(launchpadAddr, 7, codeBytes(0xab)), nil)
	s.repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	codes := make([]domain.ReferralCode, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i], errs[i] = s.uc.GetOrGenerate(s.ctx, 7, wallet)
		}(i)
	}
	wg.Wait()

	// both callers resolve to the same code off a single transaction
	for i := 0; i < 2; i++ {
		s.Require().NoError(errs[i])
		s.Equal(codes[0], codes[i])
	}
	s.txn.AssertNumberOfCalls(s.T(), "Execute", 1)
}

func (s *referralSuite) TestLookupNeverGenerates() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(&referral.Wallet{
		Address: wallet,
		Entries: []referral.Entry{{ListingId: 7, Code: "0xcafe"}},
	}, nil).Once()

	code, ok := s.uc.Lookup(s.ctx, 7, wallet)
	s.Require().True(ok)
	s.Equal(domain.ReferralCode("0xcafe"), code)

	_, ok = s.uc.Lookup(s.ctx, 8, wallet)
	s.False(ok)

	s.txn.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything)
}

func (s *referralSuite) TestMissingEventIsHardError() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound).Once()
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(7)).Return([]byte{0x01}, nil).Once()
	s.txn.On("Execute", mock.Anything, mock.Anything).Return(&txn.Receipt{TxHash: "0xhash"}, nil).Once()

	_, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().ErrorIs(err, domain.ErrMissingReferralEvent)
	s.repo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *referralSuite) TestForeignLogsIgnored() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound).Once()
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(7)).Return([]byte{0x01}, nil).Once()
	// same topic but emitted by a different contract
	s.txn.On("Execute", mock.Anything, mock.Anything).
		Return(receiptWith("0x00000000000000000000000000000000000000bb", 7, codeBytes(0xab)), nil).Once()

	_, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().ErrorIs(err, domain.ErrMissingReferralEvent)
}

func (s *referralSuite) TestPersistFailureIsBestEffort() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound).Once()
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(7)).Return([]byte{0x01}, nil).Once()
	s.txn.On("Execute", mock.Anything, mock.Anything).Return(receiptWith(launchpadAddr, 7, codeBytes(0xab)), nil).Once()
	s.repo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrStoragePersistFailed).Once()

	code, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().NoError(err)
	s.NotEmpty(code)

	// the code survives in memory even though persistence failed
	got, err := s.uc.GetOrGenerate(s.ctx, 7, wallet)
	s.Require().NoError(err)
	s.Equal(code, got)
}

func (s *referralSuite) TestEvictionKeepsNewestFifty() {
	wallet := domain.Address("0xwallet")
	s.repo.On("Load", mock.Anything, wallet).Return(nil, domain.ErrNotFound).Once()
	s.launchpad.On("Address").Return(domain.Address(launchpadAddr))

	var saved *referral.Wallet
	s.repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*referral.Wallet)
	}).Return(nil)

	for i := 1; i <= referral.CacheCapacity+1; i++ {
		id := domain.ListingId(i)
		s.launchpad.On("GenerateBuyerReferralCodeCalldata", id).Return([]byte{0x01}, nil).Once()
		s.txn.On("Execute", mock.Anything, mock.MatchedBy(func(in *txn.Intent) bool {
			return in.ListingId == id
		})).Return(receiptWith(launchpadAddr, uint64(i), codeBytes(byte(i))), nil).Once()

		_, err := s.uc.GetOrGenerate(s.ctx, id, wallet)
		s.Require().NoError(err, fmt.Sprintf("listing %d", i))
	}

	s.Require().NotNil(saved)
	s.Require().Len(saved.Entries, referral.CacheCapacity)
	// the first inserted entry is the one evicted
	s.Equal(domain.ListingId(2), saved.Entries[0].ListingId)
	s.Equal(domain.ListingId(referral.CacheCapacity+1), saved.Entries[referral.CacheCapacity-1].ListingId)

	// evicted code regenerates, retained one does not
	s.launchpad.On("GenerateBuyerReferralCodeCalldata", domain.ListingId(1)).Return([]byte{0x01}, nil).Once()
	s.txn.On("Execute", mock.Anything, mock.MatchedBy(func(in *txn.Intent) bool {
		return in.ListingId == 1
	})).Return(receiptWith(launchpadAddr, 1, codeBytes(0xff)), nil).Once()
	_, err := s.uc.GetOrGenerate(s.ctx, 1, wallet)
	s.Require().NoError(err)

	_, err = s.uc.GetOrGenerate(s.ctx, 2, wallet)
	s.Require().NoError(err)
	s.txn.AssertExpectations(s.T())
}

func (s *referralSuite) TestLink() {
	link := s.uc.Link(s.ctx, "https://pad.example.com/listing", 42, "0xcafe")
	s.Equal("https://pad.example.com/listing?listingId=42&referral=0xcafe", link)
}
