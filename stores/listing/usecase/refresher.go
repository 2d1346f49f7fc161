package usecase

import (
	"sync/atomic"
	"time"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/goroutine"
	"github.com/padx/goapi/domain/listing"
)

const defaultRefreshInterval = 15 * time.Second

type RefresherCfg struct {
	UseCase  listing.UseCase
	Interval time.Duration
}

// Refresher re-runs the listing scan on a fixed cadence. A tick that
// fires while the previous refresh is still running is dropped rather
// than queued, and Pause holds the current snapshot steady while a
// caller is mid-flow.
type Refresher struct {
	useCase  listing.UseCase
	interval time.Duration

	inFlight int32
	pauses   int32

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewRefresher(cfg *RefresherCfg) *Refresher {
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		useCase:   cfg.UseCase,
		interval:  interval,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx bCtx.Ctx) {
	goroutine.RecoverableGo(func() {
		r.run(ctx)
	})
}

func (r *Refresher) run(ctx bCtx.Ctx) {
	defer close(r.stoppedCh)

	// prime the snapshot before the first tick
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx bCtx.Ctx) {
	if atomic.LoadInt32(&r.pauses) > 0 {
		return
	}
	if !atomic.CompareAndSwapInt32(&r.inFlight, 0, 1) {
		ctx.Info("previous refresh still running, skipping tick")
		return
	}
	defer atomic.StoreInt32(&r.inFlight, 0)

	if _, err := r.useCase.Refresh(ctx); err != nil {
		ctx.WithField("err", err).Error("scheduled listing refresh failed")
	}
}

// Pause suspends scheduled refreshes so the visible snapshot cannot
// shift underneath an in-progress wallet interaction. Pauses nest:
// each concurrent caller holds its own pause and refreshes resume only
// once every one of them has called Resume.
func (r *Refresher) Pause() {
	atomic.AddInt32(&r.pauses, 1)
}

func (r *Refresher) Resume() {
	atomic.AddInt32(&r.pauses, -1)
}

func (r *Refresher) Paused() bool {
	return atomic.LoadInt32(&r.pauses) > 0
}

// Stop ends the loop and waits for any in-progress refresh to finish.
func (r *Refresher) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}
