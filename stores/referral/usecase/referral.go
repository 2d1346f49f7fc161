package usecase

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/padx/goapi/base/abi"
	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/referral"
	"github.com/padx/goapi/domain/txn"
	"github.com/padx/goapi/service/chain/contract"
)

type ReferralUseCaseCfg struct {
	Repo      referral.Repo
	Txn       txn.UseCase
	Launchpad contract.LaunchpadContract
}

type genKey struct {
	wallet domain.Address
	id     domain.ListingId
}

// generation tracks one in-flight on-chain code generation so that
// concurrent requests for the same (wallet, listing) pair share a
// single transaction.
type generation struct {
	done chan struct{}
	code domain.ReferralCode
	err  error
}

type impl struct {
	repo      referral.Repo
	txn       txn.UseCase
	launchpad contract.LaunchpadContract

	// mutex protected members
	mu       sync.Mutex
	cache    map[domain.Address][]referral.Entry
	inflight map[genKey]*generation
}

func NewReferralUseCase(cfg *ReferralUseCaseCfg) referral.UseCase {
	return &impl{
		repo:      cfg.Repo,
		txn:       cfg.Txn,
		launchpad: cfg.Launchpad,
		cache:     make(map[domain.Address][]referral.Entry),
		inflight:  make(map[genKey]*generation),
	}
}

// GetOrGenerate returns the wallet's code for the listing, hitting the
// chain only on a cache miss. The generated code is extracted from the
// ReferralCodeGenerated event in the confirmed receipt; a receipt
// without that event is a contract-protocol violation surfaced as a
// hard error.
func (u *impl) GetOrGenerate(ctx bCtx.Ctx, id domain.ListingId, wallet domain.Address) (domain.ReferralCode, error) {
	wallet = wallet.ToLower()
	key := genKey{wallet: wallet, id: id}

	u.mu.Lock()
	if code, ok := u.lookupLocked(ctx, id, wallet); ok {
		u.mu.Unlock()
		return code, nil
	}
	if g, ok := u.inflight[key]; ok {
		// another request already holds the generate transaction for
		// this pair; wait for it instead of submitting a second one
		u.mu.Unlock()
		select {
		case <-g.done:
			return g.code, g.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	g := &generation{done: make(chan struct{})}
	u.inflight[key] = g
	u.mu.Unlock()

	g.code, g.err = u.generate(ctx, id, wallet)

	u.mu.Lock()
	delete(u.inflight, key)
	u.mu.Unlock()
	close(g.done)

	return g.code, g.err
}

func (u *impl) generate(ctx bCtx.Ctx, id domain.ListingId, wallet domain.Address) (domain.ReferralCode, error) {
	data, err := u.launchpad.GenerateBuyerReferralCodeCalldata(id)
	if err != nil {
		return "", err
	}
	receipt, err := u.txn.Execute(ctx, &txn.Intent{
		Kind:      txn.KindGenerateReferral,
		ListingId: id,
		From:      wallet,
		To:        u.launchpad.Address(),
		Data:      data,
	})
	if err != nil {
		return "", err
	}

	code, err := u.extractCode(receipt)
	if err != nil {
		ctx.WithFields(log.Fields{
			"listingId": id,
			"txHash":    receipt.TxHash,
		}).Error("referral code event missing from receipt")
		return "", err
	}

	u.insert(ctx, id, wallet, code)
	return code, nil
}

func (u *impl) Lookup(ctx bCtx.Ctx, id domain.ListingId, wallet domain.Address) (domain.ReferralCode, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lookupLocked(ctx, id, wallet.ToLower())
}

func (u *impl) Link(_ bCtx.Ctx, origin string, id domain.ListingId, code domain.ReferralCode) string {
	return fmt.Sprintf("%s?listingId=%d&referral=%s", origin, id, code)
}

func (u *impl) lookupLocked(ctx bCtx.Ctx, id domain.ListingId, wallet domain.Address) (domain.ReferralCode, bool) {
	entries, ok := u.cache[wallet]
	if !ok {
		entries = u.loadLocked(ctx, wallet)
	}
	for _, e := range entries {
		if e.ListingId == id {
			return e.Code, true
		}
	}
	return "", false
}

func (u *impl) loadLocked(ctx bCtx.Ctx, wallet domain.Address) []referral.Entry {
	w, err := u.repo.Load(ctx, wallet)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			ctx.WithFields(log.Fields{
				"wallet": wallet,
				"err":    err,
			}).Warn("referral cache load failed")
		}
		u.cache[wallet] = nil
		return nil
	}
	u.cache[wallet] = w.Entries
	return w.Entries
}

// insert appends in insertion order, evicting the oldest entry when the
// cache would exceed capacity. Persistence is best-effort: a storage
// failure is logged and the code is still returned to the caller.
func (u *impl) insert(ctx bCtx.Ctx, id domain.ListingId, wallet domain.Address, code domain.ReferralCode) {
	u.mu.Lock()
	defer u.mu.Unlock()

	entries := u.cache[wallet]
	entries = append(entries, referral.Entry{ListingId: id, Code: code})
	if len(entries) > referral.CacheCapacity {
		entries = entries[len(entries)-referral.CacheCapacity:]
	}
	u.cache[wallet] = entries

	if err := u.repo.Save(ctx, &referral.Wallet{Address: wallet, Entries: entries}); err != nil {
		ctx.WithFields(log.Fields{
			"wallet": wallet,
			"err":    err,
		}).Warn("referral cache persist failed")
	}
}

func (u *impl) extractCode(receipt *txn.Receipt) (domain.ReferralCode, error) {
	contractAddr := common.HexToAddress(string(u.launchpad.Address()))
	for i := range receipt.Logs {
		l := &receipt.Logs[i]
		if l.Address != contractAddr {
			continue
		}
		if len(l.Topics) == 0 || l.Topics[0] != baseabi.ReferralCodeGeneratedID {
			continue
		}
		ev, err := baseabi.ToReferralCodeGeneratedLog(l)
		if err != nil {
			return "", err
		}
		return domain.ReferralCode("0x" + common.Bytes2Hex(ev.Code[:])), nil
	}
	return "", domain.ErrMissingReferralEvent
}
