package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

var LaunchpadABI abi.ABI

// ReferralCodeGeneratedID is the topic0 of the event consumed by the
// referral ledger.
var ReferralCodeGeneratedID common.Hash

var launchpadABI = `[` +
	`{"type":"function","name":"listingCount","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getListingBasicDetails","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"address","name":"seller"},{"type":"address","name":"tokenAddress"},{"type":"uint256","name":"amount"},{"type":"uint256","name":"soldAmount"},{"type":"uint256","name":"pricePerShare"},{"type":"address","name":"paymentToken"}]},` +
	`{"type":"function","name":"getListingAdditionalDetails","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"bool","name":"active"},{"type":"bool","name":"referralActive"},{"type":"uint256","name":"referralPercent"},{"type":"bytes32","name":"referralCode"},{"type":"uint256","name":"endTime"},{"type":"uint256","name":"initialAmount"},{"type":"uint256","name":"referralReserve"}]},` +
	`{"type":"function","name":"getListingMetadata","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"string","name":"projectWebsite"},{"type":"string","name":"socialMediaLink"},{"type":"string","name":"tokenImageUrl"},{"type":"string","name":"telegramUrl"},{"type":"string","name":"projectDescription"}]},` +
	`{"type":"function","name":"getCurrentPrice","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getFDMC","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getMarketCap","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getBuyerPayment","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"},{"type":"address","name":"buyer"}],"outputs":[{"type":"uint256","name":"paid"},{"type":"bool","name":"refunded"}]},` +
	`{"type":"function","name":"getLockedTokens","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"listingId"},{"type":"address","name":"buyer"}],"outputs":[{"type":"uint256","name":"locked"},{"type":"bool","name":"claimed"}]},` +
	`{"type":"function","name":"listToken","inputs":[{"type":"address","name":"tokenAddress"},{"type":"uint256","name":"amount"},{"type":"uint256","name":"pricePerShare"},{"type":"address","name":"paymentToken"},{"type":"uint256","name":"endTime"},{"type":"bool","name":"referralActive"},{"type":"uint256","name":"referralPercent"}],"outputs":[]},` +
	`{"type":"function","name":"buyToken","inputs":[{"type":"uint256","name":"listingId"},{"type":"uint256","name":"amount"},{"type":"bytes32","name":"referralCode"}],"outputs":[]},` +
	`{"type":"function","name":"cancelListing","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"generateBuyerReferralCode","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"claimRefund","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"claimTokens","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"withdrawUnsoldTokens","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"claimPoolFunds","inputs":[{"type":"uint256","name":"listingId"}],"outputs":[]},` +
	`{"type":"function","name":"withdrawPaymentTokens","inputs":[{"type":"address","name":"token"},{"type":"uint256","name":"amount"},{"type":"address","name":"to"}],"outputs":[]},` +
	`{"type":"function","name":"withdrawTokens","inputs":[{"type":"address","name":"token"},{"type":"uint256","name":"amount"},{"type":"address","name":"to"}],"outputs":[]},` +
	`{"type":"event","anonymous":false,"name":"ReferralCodeGenerated","inputs":[{"type":"uint256","name":"listingId","indexed":true},{"type":"bytes32","name":"code"},{"type":"address","name":"buyer","indexed":true}]}` +
	`]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(launchpadABI))
	if err != nil {
		panic("Failed to parse launchpad abi")
	}
	LaunchpadABI = _abi
	ReferralCodeGeneratedID = LaunchpadABI.Events["ReferralCodeGenerated"].ID
}

type ReferralCodeGeneratedLog struct {
	ListingId *big.Int // indexed
	Code      [32]byte
	Buyer     common.Address // indexed
}

func ToReferralCodeGeneratedLog(log *types.Log) (*ReferralCodeGeneratedLog, error) {
	if len(log.Topics) < 3 {
		return nil, xerrors.Errorf("malformed ReferralCodeGenerated log: %d topics", len(log.Topics))
	}
	var ev ReferralCodeGeneratedLog
	if err := LaunchpadABI.UnpackIntoInterface(&ev, "ReferralCodeGenerated", log.Data); err != nil {
		return nil, err
	}
	ev.ListingId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	ev.Buyer = common.BytesToAddress(log.Topics[2].Bytes())
	return &ev, nil
}
