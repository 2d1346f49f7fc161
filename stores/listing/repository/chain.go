package repository

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/keys"
	"github.com/padx/goapi/domain/listing"
	"github.com/padx/goapi/service/cache"
	"github.com/padx/goapi/service/chain/contract"
)

const fetchTimeout = 30 * time.Second

type ChainRepoCfg struct {
	ChainId        domain.ChainId
	Launchpad      contract.LaunchpadContract
	Erc20          contract.Erc20Contract
	TokenInfoCache cache.Service
	Model          listing.PricingModel
}

type chainRepo struct {
	chainId        domain.ChainId
	launchpad      contract.LaunchpadContract
	erc20          contract.Erc20Contract
	tokenInfoCache cache.Service
	model          listing.PricingModel

	workerPool *goroutines.Pool
}

// NewChainRepo builds the chain-backed listing source. Listing ids are
// contract-assigned starting at 1; a scan walks [1, listingCount].
func NewChainRepo(cfg *ChainRepoCfg) listing.Repo {
	return &chainRepo{
		chainId:        cfg.ChainId,
		launchpad:      cfg.Launchpad,
		erc20:          cfg.Erc20,
		tokenInfoCache: cfg.TokenInfoCache,
		model:          cfg.Model,
		workerPool:     goroutines.NewPool(32, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(8)),
	}
}

func (r *chainRepo) Count(ctx bCtx.Ctx) (uint64, error) {
	return r.launchpad.ListingCount(ctx)
}

// FetchOne reads the three listing detail tuples concurrently, then the
// token info of both the listed and payment token. The detail reads are
// independent and may land in any order. The two tokens keep
// their own decimal counts; nothing downstream may mix them up.
func (r *chainRepo) FetchOne(ctx bCtx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	var (
		wg       sync.WaitGroup
		basic    *contract.BasicDetails
		extra    *contract.AdditionalDetails
		meta     *contract.ListingMetadata
		errBasic error
		errExtra error
		errMeta  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		basic, errBasic = r.launchpad.GetListingBasicDetails(ctx, id)
	}()
	go func() {
		defer wg.Done()
		extra, errExtra = r.launchpad.GetListingAdditionalDetails(ctx, id)
	}()
	go func() {
		defer wg.Done()
		meta, errMeta = r.launchpad.GetListingMetadata(ctx, id)
	}()
	wg.Wait()
	for _, err := range []error{errBasic, errExtra, errMeta} {
		if err != nil {
			return nil, xerrors.Errorf("%w: listing %d: %s", domain.ErrListingFetchFailed, id, err.Error())
		}
	}

	var (
		tokenInfo   listing.TokenInfo
		paymentInfo listing.TokenInfo
		errToken    error
		errPayment  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errToken = r.tokenInfo(ctx, basic.TokenAddress, &tokenInfo)
	}()
	go func() {
		defer wg.Done()
		errPayment = r.tokenInfo(ctx, basic.PaymentToken, &paymentInfo)
	}()
	wg.Wait()
	for _, err := range []error{errToken, errPayment} {
		if err != nil {
			return nil, xerrors.Errorf("%w: listing %d: %s", domain.ErrListingFetchFailed, id, err.Error())
		}
	}

	l := &listing.Listing{
		Id:              id,
		Seller:          basic.Seller,
		TokenAddress:    basic.TokenAddress,
		PaymentToken:    basic.PaymentToken,
		Model:           r.model,
		InitialAmount:   extra.InitialAmount,
		SoldAmount:      basic.SoldAmount,
		RemainingAmount: basic.Amount,
		PricePerShare:   basic.PricePerShare,
		Active:          extra.Active,
		EndTime:         extra.EndTime,
		ReferralActive:  extra.ReferralActive,
		ReferralPercent: extra.ReferralPercent,
		ReferralReserve: extra.ReferralReserve,
		ReferralCode:    extra.ReferralCode,
		Token:           tokenInfo,
		Payment:         paymentInfo,
		Metadata: listing.Metadata{
			ProjectWebsite:     meta.ProjectWebsite,
			SocialMediaLink:    meta.SocialMediaLink,
			TokenImageUrl:      meta.TokenImageUrl,
			TelegramUrl:        meta.TelegramUrl,
			ProjectDescription: meta.ProjectDescription,
		},
	}
	if l.RemainingAmount == nil && l.InitialAmount != nil && l.SoldAmount != nil {
		l.RemainingAmount = new(big.Int).Sub(l.InitialAmount, l.SoldAmount)
	}

	if r.model == listing.PricingBondingCurve {
		if err := r.fetchCurveViews(ctx, l); err != nil {
			return nil, xerrors.Errorf("%w: listing %d: %s", domain.ErrListingFetchFailed, id, err.Error())
		}
	}
	return l, nil
}

// FetchAll scans every listing, isolating per-listing failures so one
// bad record never aborts the batch. Partial data is still usable.
func (r *chainRepo) FetchAll(ctx bCtx.Ctx) ([]listing.FetchResult, error) {
	count, err := r.Count(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("launchpad.ListingCount failed")
		return nil, err
	}

	results := make([]listing.FetchResult, count)
	var wg sync.WaitGroup
	for i := uint64(0); i < count; i++ {
		i := i
		id := domain.ListingId(i + 1)
		wg.Add(1)
		if err := r.schedule(func() {
			defer wg.Done()
			l, err := r.FetchOne(ctx, id)
			if err != nil {
				ctx.WithFields(log.Fields{
					"listingId": id,
					"err":       err,
				}).Warn("listing fetch failed, skipping")
			}
			results[i] = listing.FetchResult{Index: i, Listing: l, Err: err}
		}); err != nil {
			wg.Done()
			results[i] = listing.FetchResult{Index: i, Err: err}
		}
	}
	wg.Wait()
	return results, nil
}

func (r *chainRepo) FetchPosition(ctx bCtx.Ctx, id domain.ListingId, buyer domain.Address) (*listing.Position, error) {
	paid, refunded, err := r.launchpad.GetBuyerPayment(ctx, id, buyer)
	if err != nil {
		return nil, err
	}
	locked, claimed, err := r.launchpad.GetLockedTokens(ctx, id, buyer)
	if err != nil {
		return nil, err
	}
	return &listing.Position{
		Paid:     paid,
		Refunded: refunded,
		Locked:   locked,
		Claimed:  claimed,
	}, nil
}

func (r *chainRepo) schedule(f func()) error {
	return r.workerPool.ScheduleWithTimeout(fetchTimeout, f)
}

// tokenInfo memoizes erc20 name/symbol/decimals; they do not change.
func (r *chainRepo) tokenInfo(ctx bCtx.Ctx, addr domain.Address, out *listing.TokenInfo) error {
	key := keys.CacheKey(keys.PfxTokenInfo, fmt.Sprintf("%d", r.chainId), addr.ToLowerStr())
	return r.tokenInfoCache.GetByFunc(ctx, key, out, func() (interface{}, error) {
		name, err := r.erc20.Name(ctx, int32(r.chainId), addr)
		if err != nil {
			return nil, err
		}
		symbol, err := r.erc20.Symbol(ctx, int32(r.chainId), addr)
		if err != nil {
			return nil, err
		}
		decimals, err := r.erc20.Decimals(ctx, int32(r.chainId), addr)
		if err != nil {
			return nil, err
		}
		return &listing.TokenInfo{
			Address:  addr.ToLower(),
			Name:     name,
			Symbol:   symbol,
			Decimals: decimals,
		}, nil
	})
}

func (r *chainRepo) fetchCurveViews(ctx bCtx.Ctx, l *listing.Listing) error {
	var (
		wg                              sync.WaitGroup
		price, fdmc, marketCap          *big.Int
		errPrice, errFdmc, errMarketCap error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		price, errPrice = r.launchpad.GetCurrentPrice(ctx, l.Id)
	}()
	go func() {
		defer wg.Done()
		fdmc, errFdmc = r.launchpad.GetFDMC(ctx, l.Id)
	}()
	go func() {
		defer wg.Done()
		marketCap, errMarketCap = r.launchpad.GetMarketCap(ctx, l.Id)
	}()
	wg.Wait()
	for _, err := range []error{errPrice, errFdmc, errMarketCap} {
		if err != nil {
			return err
		}
	}
	l.CurrentPrice = price
	l.Fdmc = fdmc
	l.MarketCap = marketCap
	return nil
}
