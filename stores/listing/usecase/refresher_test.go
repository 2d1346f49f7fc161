package usecase

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/listing"
)

// countingUseCase records Refresh calls and can block to simulate a
// slow scan.
type countingUseCase struct {
	calls   int64
	block   chan struct{}
	release chan struct{}
}

func (c *countingUseCase) Refresh(_ bCtx.Ctx) (*listing.Snapshot, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.block != nil {
		c.block <- struct{}{}
		<-c.release
	}
	return &listing.Snapshot{}, nil
}

func (c *countingUseCase) Snapshot(_ bCtx.Ctx) *listing.Snapshot { return nil }
func (c *countingUseCase) Active(_ bCtx.Ctx, _ *listing.SearchParams) []*listing.View {
	return nil
}
func (c *countingUseCase) Terminal(_ bCtx.Ctx, _ *listing.SearchParams) []*listing.View {
	return nil
}
func (c *countingUseCase) Get(_ bCtx.Ctx, _ domain.ListingId) (*listing.View, error) {
	return nil, domain.ErrNotFound
}
func (c *countingUseCase) ActionsFor(_ bCtx.Ctx, _ domain.ListingId, _ listing.Caller) ([]listing.Action, error) {
	return nil, nil
}

func (c *countingUseCase) count() int64 {
	return atomic.LoadInt64(&c.calls)
}

func TestRefresherTicks(t *testing.T) {
	uc := &countingUseCase{}
	r := NewRefresher(&RefresherCfg{UseCase: uc, Interval: 10 * time.Millisecond})

	r.Start(bCtx.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return uc.count() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestRefresherPauseHoldsSnapshot(t *testing.T) {
	uc := &countingUseCase{}
	r := NewRefresher(&RefresherCfg{UseCase: uc, Interval: 10 * time.Millisecond})

	r.Start(bCtx.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return uc.count() >= 1 }, time.Second, 5*time.Millisecond)

	r.Pause()
	require.True(t, r.Paused())
	paused := uc.count()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, paused, uc.count())

	r.Resume()
	require.False(t, r.Paused())
	require.Eventually(t, func() bool { return uc.count() > paused }, time.Second, 5*time.Millisecond)
}

func TestRefresherPausesNest(t *testing.T) {
	uc := &countingUseCase{}
	r := NewRefresher(&RefresherCfg{UseCase: uc, Interval: 10 * time.Millisecond})

	r.Start(bCtx.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return uc.count() >= 1 }, time.Second, 5*time.Millisecond)

	// two concurrent callers each pause; the first one finishing must
	// not resume refreshes while the second is still mid-flight
	r.Pause()
	r.Pause()
	r.Resume()
	require.True(t, r.Paused())

	paused := uc.count()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, paused, uc.count())

	r.Resume()
	require.False(t, r.Paused())
	require.Eventually(t, func() bool { return uc.count() > paused }, time.Second, 5*time.Millisecond)
}

func TestRefresherDropsOverlappingTicks(t *testing.T) {
	uc := &countingUseCase{
		block:   make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := NewRefresher(&RefresherCfg{UseCase: uc, Interval: 5 * time.Millisecond})

	r.Start(bCtx.Background())

	// the priming refresh is now blocked mid-flight
	<-uc.block
	// let several ticks fire while it holds the in-flight flag
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, uc.count())

	close(uc.release)
	require.Eventually(t, func() bool { return uc.count() >= 2 }, time.Second, 5*time.Millisecond)

	// drain so Stop is not blocked by a stuck Refresh
	go func() {
		for range uc.block {
		}
	}()
	r.Stop()
}

func TestRefresherStopEndsLoop(t *testing.T) {
	uc := &countingUseCase{}
	r := NewRefresher(&RefresherCfg{UseCase: uc, Interval: 10 * time.Millisecond})

	r.Start(bCtx.Background())
	require.Eventually(t, func() bool { return uc.count() >= 1 }, time.Second, 5*time.Millisecond)

	r.Stop()
	stopped := uc.count()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, stopped, uc.count())
}
