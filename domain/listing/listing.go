package listing

import (
	"math/big"
	"time"

	"github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
)

// TokenInfo carries the on-chain identity of an ERC20 token. The listed
// token and the payment token each have their own decimal count and the
// two must never be conflated when scaling amounts.
type TokenInfo struct {
	Address  domain.Address `json:"address"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals int32          `json:"decimals"`
}

// Metadata is free-form descriptive data, passed through untouched.
type Metadata struct {
	ProjectWebsite     string `json:"projectWebsite"`
	SocialMediaLink    string `json:"socialMediaLink"`
	TokenImageUrl      string `json:"tokenImageUrl"`
	TelegramUrl        string `json:"telegramUrl"`
	ProjectDescription string `json:"projectDescription"`
}

type PricingModel string

const (
	PricingFixed        PricingModel = "fixed"
	PricingBondingCurve PricingModel = "bondingCurve"
)

// Listing is a snapshot of one launchpad listing as read from the
// contract. All amounts are raw integers scaled by the owning asset's
// decimal count; display values are derived downstream.
type Listing struct {
	Id           domain.ListingId `json:"id"`
	Seller       domain.Address   `json:"seller"`
	TokenAddress domain.Address   `json:"tokenAddress"`
	PaymentToken domain.Address   `json:"paymentToken"`

	Model PricingModel `json:"model"`

	InitialAmount   *big.Int `json:"initialAmount"`
	SoldAmount      *big.Int `json:"soldAmount"`
	RemainingAmount *big.Int `json:"remainingAmount"`

	// PricePerShare is stored by the contract at 18-decimal precision
	// regardless of the payment token's own decimals.
	PricePerShare *big.Int `json:"pricePerShare"`

	// bonding-curve view values, scaled by the payment token's decimals
	CurrentPrice *big.Int `json:"currentPrice,omitempty"`
	Fdmc         *big.Int `json:"fdmc,omitempty"`
	MarketCap    *big.Int `json:"marketCap,omitempty"`

	Active  bool  `json:"active"`
	EndTime int64 `json:"endTime"` // unix seconds, immutable after creation

	ReferralActive  bool                `json:"referralActive"`
	ReferralPercent int32               `json:"referralPercent"` // [0,100]
	ReferralReserve *big.Int            `json:"referralReserve"`
	ReferralCode    domain.ReferralCode `json:"referralCode,omitempty"`

	Token   TokenInfo `json:"token"`
	Payment TokenInfo `json:"payment"`

	Metadata Metadata `json:"metadata"`
}

func (l *Listing) IsExpired(now time.Time) bool {
	return now.Unix() > l.EndTime
}

// FetchResult isolates one listing's fetch outcome so a single bad
// listing never aborts the whole scan.
type FetchResult struct {
	Index   uint64
	Listing *Listing
	Err     error
}

// View is the classified, display-ready projection handed to the
// collaborator boundary.
type View struct {
	Listing

	Phase          Phase    `json:"phase"`
	PercentageSold float64  `json:"percentageSold"`
	Actions        []Action `json:"actions"`

	DisplayInitialAmount   string `json:"displayInitialAmount"`
	DisplaySoldAmount      string `json:"displaySoldAmount"`
	DisplayRemainingAmount string `json:"displayRemainingAmount"`
	DisplayPrice           string `json:"displayPrice"`
	DisplayCurrentPrice    string `json:"displayCurrentPrice,omitempty"`
	DisplayFdmc            string `json:"displayFdmc,omitempty"`
	DisplayMarketCap       string `json:"displayMarketCap,omitempty"`
	DisplayTotalRaised     string `json:"displayTotalRaised,omitempty"`
}

// Position is a buyer's recorded stake in one listing.
type Position struct {
	Paid     *big.Int
	Refunded bool
	Locked   *big.Int
	Claimed  bool
}

type SortBy string

const (
	SortByEndTime        SortBy = "endTime"
	SortByPercentageSold SortBy = "percentageSold"
	SortById             SortBy = "id"
)

type SearchParams struct {
	SortBy  SortBy         `query:"sortBy"`
	SortDir domain.SortDir `query:"sortDir"`
	Seller  domain.Address `query:"seller"`
}

// Repo reads listings from the chain.
type Repo interface {
	Count(ctx.Ctx) (uint64, error)
	FetchOne(ctx.Ctx, domain.ListingId) (*Listing, error)
	FetchAll(ctx.Ctx) ([]FetchResult, error)
	FetchPosition(ctx.Ctx, domain.ListingId, domain.Address) (*Position, error)
}

// Snapshot is one refresh cycle's output, partitioned by phase.
type Snapshot struct {
	Active    []*View
	Terminal  []*View
	FetchedAt time.Time
	Failed    int
}

type UseCase interface {
	Refresh(ctx.Ctx) (*Snapshot, error)
	// Snapshot returns the last refreshed snapshot without touching the chain.
	Snapshot(ctx.Ctx) *Snapshot
	Active(ctx.Ctx, *SearchParams) []*View
	Terminal(ctx.Ctx, *SearchParams) []*View
	Get(ctx.Ctx, domain.ListingId) (*View, error)
	// ActionsFor resolves the caller-specific action set, reading the
	// caller's position from the chain when the phase requires it.
	ActionsFor(ctx.Ctx, domain.ListingId, Caller) ([]Action, error)
}
