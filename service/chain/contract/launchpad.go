package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/padx/goapi/base/abi"
	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/service/chain"
)

// BasicDetails mirrors getListingBasicDetails. Loosely-typed contract
// tuples are mapped to structs once, here at the boundary.
type BasicDetails struct {
	Seller        domain.Address
	TokenAddress  domain.Address
	Amount        *big.Int
	SoldAmount    *big.Int
	PricePerShare *big.Int
	PaymentToken  domain.Address
}

type AdditionalDetails struct {
	Active          bool
	ReferralActive  bool
	ReferralPercent int32
	ReferralCode    domain.ReferralCode
	EndTime         int64
	InitialAmount   *big.Int
	ReferralReserve *big.Int
}

type ListingMetadata struct {
	ProjectWebsite     string
	SocialMediaLink    string
	TokenImageUrl      string
	TelegramUrl        string
	ProjectDescription string
}

type LaunchpadContract interface {
	ListingCount(ctx bCtx.Ctx) (uint64, error)
	GetListingBasicDetails(ctx bCtx.Ctx, id domain.ListingId) (*BasicDetails, error)
	GetListingAdditionalDetails(ctx bCtx.Ctx, id domain.ListingId) (*AdditionalDetails, error)
	GetListingMetadata(ctx bCtx.Ctx, id domain.ListingId) (*ListingMetadata, error)
	GetCurrentPrice(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error)
	GetFDMC(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error)
	GetMarketCap(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error)
	GetBuyerPayment(ctx bCtx.Ctx, id domain.ListingId, buyer domain.Address) (*big.Int, bool, error)
	GetLockedTokens(ctx bCtx.Ctx, id domain.ListingId, buyer domain.Address) (*big.Int, bool, error)

	Address() domain.Address
	ListTokenCalldata(token domain.Address, amount, pricePerShare *big.Int, paymentToken domain.Address, endTime int64, referralActive bool, referralPercent int32) ([]byte, error)
	BuyTokenCalldata(id domain.ListingId, amount *big.Int, code domain.ReferralCode) ([]byte, error)
	CancelListingCalldata(id domain.ListingId) ([]byte, error)
	GenerateBuyerReferralCodeCalldata(id domain.ListingId) ([]byte, error)
	ClaimRefundCalldata(id domain.ListingId) ([]byte, error)
	ClaimTokensCalldata(id domain.ListingId) ([]byte, error)
	WithdrawUnsoldTokensCalldata(id domain.ListingId) ([]byte, error)
	ClaimPoolFundsCalldata(id domain.ListingId) ([]byte, error)
	WithdrawPaymentTokensCalldata(token domain.Address, amount *big.Int, to domain.Address) ([]byte, error)
	WithdrawTokensCalldata(token domain.Address, amount *big.Int, to domain.Address) ([]byte, error)
}

type Launchpad struct {
	chainService chain.Client
	abi          ethabi.ABI
	chainId      int32
	address      common.Address
}

func NewLaunchpad(chainService chain.Client, chainId domain.ChainId, address domain.Address) *Launchpad {
	return &Launchpad{
		chainService: chainService,
		abi:          baseabi.LaunchpadABI,
		chainId:      int32(chainId),
		address:      common.HexToAddress(string(address)),
	}
}

func (l *Launchpad) Address() domain.Address {
	return domain.Address(l.address.Hex()).ToLower()
}

func (l *Launchpad) ListingCount(ctx bCtx.Ctx) (uint64, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "listingCount")
	if err != nil {
		return 0, err
	}
	return unpacked[0].(*big.Int).Uint64(), nil
}

func (l *Launchpad) GetListingBasicDetails(ctx bCtx.Ctx, id domain.ListingId) (*BasicDetails, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "getListingBasicDetails", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return nil, err
	}
	return &BasicDetails{
		Seller:        toDomainAddress(unpacked[0]),
		TokenAddress:  toDomainAddress(unpacked[1]),
		Amount:        unpacked[2].(*big.Int),
		SoldAmount:    unpacked[3].(*big.Int),
		PricePerShare: unpacked[4].(*big.Int),
		PaymentToken:  toDomainAddress(unpacked[5]),
	}, nil
}

func (l *Launchpad) GetListingAdditionalDetails(ctx bCtx.Ctx, id domain.ListingId) (*AdditionalDetails, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "getListingAdditionalDetails", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return nil, err
	}
	code := unpacked[3].([32]byte)
	return &AdditionalDetails{
		Active:          unpacked[0].(bool),
		ReferralActive:  unpacked[1].(bool),
		ReferralPercent: int32(unpacked[2].(*big.Int).Int64()),
		ReferralCode:    toReferralCode(code),
		EndTime:         unpacked[4].(*big.Int).Int64(),
		InitialAmount:   unpacked[5].(*big.Int),
		ReferralReserve: unpacked[6].(*big.Int),
	}, nil
}

func (l *Launchpad) GetListingMetadata(ctx bCtx.Ctx, id domain.ListingId) (*ListingMetadata, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "getListingMetadata", new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return nil, err
	}
	return &ListingMetadata{
		ProjectWebsite:     unpacked[0].(string),
		SocialMediaLink:    unpacked[1].(string),
		TokenImageUrl:      unpacked[2].(string),
		TelegramUrl:        unpacked[3].(string),
		ProjectDescription: unpacked[4].(string),
	}, nil
}

func (l *Launchpad) GetCurrentPrice(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error) {
	return l.viewBigInt(ctx, "getCurrentPrice", id)
}

func (l *Launchpad) GetFDMC(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error) {
	return l.viewBigInt(ctx, "getFDMC", id)
}

func (l *Launchpad) GetMarketCap(ctx bCtx.Ctx, id domain.ListingId) (*big.Int, error) {
	return l.viewBigInt(ctx, "getMarketCap", id)
}

func (l *Launchpad) viewBigInt(ctx bCtx.Ctx, method string, id domain.ListingId) (*big.Int, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, method, new(big.Int).SetUint64(uint64(id)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (l *Launchpad) GetBuyerPayment(ctx bCtx.Ctx, id domain.ListingId, buyer domain.Address) (*big.Int, bool, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "getBuyerPayment", new(big.Int).SetUint64(uint64(id)), common.HexToAddress(string(buyer)))
	if err != nil {
		return nil, false, err
	}
	return unpacked[0].(*big.Int), unpacked[1].(bool), nil
}

func (l *Launchpad) GetLockedTokens(ctx bCtx.Ctx, id domain.ListingId, buyer domain.Address) (*big.Int, bool, error) {
	unpacked, err := l.chainService.Call(ctx, l.chainId, l.address, nil, l.abi, "getLockedTokens", new(big.Int).SetUint64(uint64(id)), common.HexToAddress(string(buyer)))
	if err != nil {
		return nil, false, err
	}
	return unpacked[0].(*big.Int), unpacked[1].(bool), nil
}

func (l *Launchpad) ListTokenCalldata(token domain.Address, amount, pricePerShare *big.Int, paymentToken domain.Address, endTime int64, referralActive bool, referralPercent int32) ([]byte, error) {
	return l.abi.Pack("listToken",
		common.HexToAddress(string(token)),
		amount,
		pricePerShare,
		common.HexToAddress(string(paymentToken)),
		big.NewInt(endTime),
		referralActive,
		big.NewInt(int64(referralPercent)),
	)
}

func (l *Launchpad) BuyTokenCalldata(id domain.ListingId, amount *big.Int, code domain.ReferralCode) ([]byte, error) {
	return l.abi.Pack("buyToken", new(big.Int).SetUint64(uint64(id)), amount, fromReferralCode(code))
}

func (l *Launchpad) CancelListingCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("cancelListing", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) GenerateBuyerReferralCodeCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("generateBuyerReferralCode", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) ClaimRefundCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("claimRefund", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) ClaimTokensCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("claimTokens", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) WithdrawUnsoldTokensCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("withdrawUnsoldTokens", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) ClaimPoolFundsCalldata(id domain.ListingId) ([]byte, error) {
	return l.abi.Pack("claimPoolFunds", new(big.Int).SetUint64(uint64(id)))
}

func (l *Launchpad) WithdrawPaymentTokensCalldata(token domain.Address, amount *big.Int, to domain.Address) ([]byte, error) {
	return l.abi.Pack("withdrawPaymentTokens", common.HexToAddress(string(token)), amount, common.HexToAddress(string(to)))
}

func (l *Launchpad) WithdrawTokensCalldata(token domain.Address, amount *big.Int, to domain.Address) ([]byte, error) {
	return l.abi.Pack("withdrawTokens", common.HexToAddress(string(token)), amount, common.HexToAddress(string(to)))
}

func toDomainAddress(v interface{}) domain.Address {
	return domain.Address(v.(common.Address).Hex()).ToLower()
}

func toReferralCode(code [32]byte) domain.ReferralCode {
	empty := true
	for _, b := range code {
		if b != 0 {
			empty = false
			break
		}
	}
	if empty {
		return ""
	}
	return domain.ReferralCode("0x" + common.Bytes2Hex(code[:]))
}

func fromReferralCode(code domain.ReferralCode) [32]byte {
	var out [32]byte
	s := string(code)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	copy(out[:], common.Hex2Bytes(s))
	return out
}
