package referral

import (
	"github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
)

// CacheCapacity bounds the per-wallet code cache. When a 51st code is
// inserted the oldest-inserted entry is evicted.
const CacheCapacity = 50

// Entry is one cached (listingId, code) pair. Order preserves insertion
// order for eviction; access never reorders.
type Entry struct {
	ListingId domain.ListingId    `json:"listingId"`
	Code      domain.ReferralCode `json:"code"`
}

// Wallet is the serialized per-wallet cache document.
type Wallet struct {
	Address domain.Address `json:"address"`
	Entries []Entry        `json:"entries"`
}

// Repo persists the per-wallet cache to durable local storage. Persist
// failures must be treated as best-effort by callers.
type Repo interface {
	Load(ctx.Ctx, domain.Address) (*Wallet, error)
	Save(ctx.Ctx, *Wallet) error
}

// UseCase is the referral-code ledger. GetOrGenerate returns a cached
// code without touching the chain, or generates one on-chain on miss.
type UseCase interface {
	GetOrGenerate(ctx.Ctx, domain.ListingId, domain.Address) (domain.ReferralCode, error)
	// Lookup is a cache-only read. It never sends a transaction.
	Lookup(ctx.Ctx, domain.ListingId, domain.Address) (domain.ReferralCode, bool)
	// Link builds the share link origin?listingId=<id>&referral=<code>.
	Link(ctx.Ctx, string, domain.ListingId, domain.ReferralCode) string
}
