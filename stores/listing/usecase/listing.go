package usecase

import (
	"sort"
	"sync"
	"time"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/metrics"
	"github.com/padx/goapi/base/pricefmt"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/listing"
)

var metOnce sync.Once
var met metrics.Service

type ListingUseCaseCfg struct {
	Repo        listing.Repo
	PhaseConfig listing.PhaseConfig
	Operator    domain.Address

	// Now is injectable for deterministic phase resolution in tests.
	// Defaults to time.Now.
	Now func() time.Time
}

type impl struct {
	repo     listing.Repo
	phaseCfg listing.PhaseConfig
	operator domain.Address
	now      func() time.Time

	// mutex protected members
	mu       sync.RWMutex
	snapshot *listing.Snapshot
	byId     map[domain.ListingId]*listing.View
}

func NewListingUseCase(cfg *ListingUseCaseCfg) listing.UseCase {
	metOnce.Do(func() {
		met = metrics.New("listing")
	})
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:     cfg.Repo,
		phaseCfg: cfg.PhaseConfig,
		operator: cfg.Operator,
		now:      now,
		byId:     make(map[domain.ListingId]*listing.View),
	}
}

// Refresh rescans the chain, classifies every listing and swaps in the
// new snapshot atomically. Listings that failed to fetch are counted
// but never block the rest of the batch.
func (u *impl) Refresh(ctx bCtx.Ctx) (*listing.Snapshot, error) {
	defer met.BumpTime("refresh.duration").End()
	started := u.now()
	results, err := u.repo.FetchAll(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("listing.FetchAll failed")
		met.BumpSum("refresh.failed", 1)
		return nil, err
	}

	snap := &listing.Snapshot{FetchedAt: started}
	byId := make(map[domain.ListingId]*listing.View, len(results))
	for _, res := range results {
		if res.Err != nil || res.Listing == nil {
			snap.Failed++
			continue
		}
		v := u.classify(res.Listing, started)
		byId[v.Id] = v
		if v.Phase == listing.PhaseActive && v.RemainingAmount != nil && v.RemainingAmount.Sign() > 0 {
			snap.Active = append(snap.Active, v)
		} else {
			snap.Terminal = append(snap.Terminal, v)
		}
	}

	u.mu.Lock()
	u.snapshot = snap
	u.byId = byId
	u.mu.Unlock()

	met.BumpSum("refresh.ok", 1)
	met.BumpAvg("refresh.active", float64(len(snap.Active)))
	met.BumpAvg("refresh.terminal", float64(len(snap.Terminal)))
	met.BumpAvg("refresh.fetchFailed", float64(snap.Failed))
	return snap, nil
}

func (u *impl) Snapshot(_ bCtx.Ctx) *listing.Snapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshot
}

func (u *impl) Active(_ bCtx.Ctx, params *listing.SearchParams) []*listing.View {
	u.mu.RLock()
	src := []*listing.View(nil)
	if u.snapshot != nil {
		src = u.snapshot.Active
	}
	u.mu.RUnlock()
	return filterAndSort(src, params)
}

func (u *impl) Terminal(_ bCtx.Ctx, params *listing.SearchParams) []*listing.View {
	u.mu.RLock()
	src := []*listing.View(nil)
	if u.snapshot != nil {
		src = u.snapshot.Terminal
	}
	u.mu.RUnlock()
	return filterAndSort(src, params)
}

func (u *impl) Get(ctx bCtx.Ctx, id domain.ListingId) (*listing.View, error) {
	u.mu.RLock()
	v, ok := u.byId[id]
	u.mu.RUnlock()
	if ok {
		return v, nil
	}

	// fall back to a direct fetch for listings created since the last refresh
	l, err := u.repo.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.classify(l, u.now()), nil
}

func (u *impl) ActionsFor(ctx bCtx.Ctx, id domain.ListingId, caller listing.Caller) ([]listing.Action, error) {
	v, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	caller.Address = caller.Address.ToLower()
	if !caller.IsOperator && caller.Address.Equals(u.operator) {
		caller.IsOperator = true
	}

	now := u.now()
	var pos *listing.Position
	phase := listing.ResolvePhase(&v.Listing, now, u.phaseCfg)
	if phase == listing.PhaseRefundable || phase == listing.PhaseClaimable {
		pos, err = u.repo.FetchPosition(ctx, id, caller.Address)
		if err != nil {
			ctx.WithField("err", err).Error("listing.FetchPosition failed")
			return nil, err
		}
	}
	return listing.AllowedActions(&v.Listing, caller, pos, now, u.phaseCfg), nil
}

// classify attaches the phase, the caller-agnostic action hints and the
// display projections to one raw listing.
func (u *impl) classify(l *listing.Listing, now time.Time) *listing.View {
	v := &listing.View{
		Listing:        *l,
		Phase:          listing.ResolvePhase(l, now, u.phaseCfg),
		PercentageSold: listing.PercentageSold(l),
	}
	v.Actions = listing.AllowedActions(l, listing.Caller{}, nil, now, u.phaseCfg)

	tokenDec := l.Token.Decimals
	payDec := l.Payment.Decimals
	v.DisplayInitialAmount = pricefmt.ToDisplayString(l.InitialAmount, tokenDec)
	v.DisplaySoldAmount = pricefmt.ToDisplayString(l.SoldAmount, tokenDec)
	v.DisplayRemainingAmount = pricefmt.ToDisplayString(l.RemainingAmount, tokenDec)
	v.DisplayPrice = pricefmt.ToDisplayString(l.PricePerShare, pricefmt.PriceStorageDecimals)
	v.DisplayTotalRaised = pricefmt.FixedCostDisplay(l.SoldAmount, l.PricePerShare, payDec).String()

	if l.Model == listing.PricingBondingCurve {
		v.DisplayCurrentPrice = pricefmt.CurrentPriceDisplay(l.CurrentPrice, payDec).String()
		v.DisplayFdmc = pricefmt.CurrentPriceDisplay(l.Fdmc, payDec).String()
		v.DisplayMarketCap = pricefmt.CurrentPriceDisplay(l.MarketCap, payDec).String()
	}
	return v
}

func filterAndSort(src []*listing.View, params *listing.SearchParams) []*listing.View {
	out := make([]*listing.View, 0, len(src))
	for _, v := range src {
		if params != nil && !params.Seller.IsEmpty() && !params.Seller.Equals(v.Seller) {
			continue
		}
		out = append(out, v)
	}
	if params == nil {
		return out
	}

	dir := params.SortDir
	if dir == 0 {
		dir = domain.SortDirAsc
	}
	less := func(a, b *listing.View) bool { return a.Id < b.Id }
	switch params.SortBy {
	case listing.SortByEndTime:
		less = func(a, b *listing.View) bool { return a.EndTime < b.EndTime }
	case listing.SortByPercentageSold:
		less = func(a, b *listing.View) bool { return a.PercentageSold < b.PercentageSold }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == domain.SortDirDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
