package preload

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milk9111/wizard/entity"
	"go.uber.org/zap/zaptest"
)

type recordingLoader struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	block map[string]chan struct{}
}

func (l *recordingLoader) Load(ctx context.Context, sprite string) error {
	l.mu.Lock()
	l.calls = append(l.calls, sprite)
	ch := l.block[sprite]
	err := l.fail[sprite]
	l.mu.Unlock()
	if ch != nil {
		<-ch
	}
	return err
}

func (l *recordingLoader) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]string(nil), l.calls...)
	sort.Strings(out)
	return out
}

func levelEntities() []*entity.Entity {
	return []*entity.Entity{
		{Kind: entity.KindPlayer, Sprite: "wizard", SpriteReversed: "wizard-reversed"},
		{Kind: entity.KindFireball, Sprite: "fireball"},
		{Kind: entity.KindFireball, Sprite: "fireball"},
	}
}

func waitReady(t *testing.T, ready <-chan struct{}) {
	t.Helper()
	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatalf("onReady never called")
	}
}

func TestPreloadLoadsDistinctSpritesOnce(t *testing.T) {
	loader := &recordingLoader{}
	g := NewGate(loader, time.Second, zaptest.NewLogger(t))

	var readyCalls atomic.Int32
	ready := make(chan struct{}, 4)
	g.Preload("intro", levelEntities(), func() {
		readyCalls.Add(1)
		ready <- struct{}{}
	})
	waitReady(t, ready)

	want := []string{"fireball", "wizard", "wizard-reversed"}
	got := loader.Calls()
	if len(got) != len(want) {
		t.Fatalf("loads = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("loads = %v, want %v", got, want)
		}
	}
	if !g.Settled("intro") {
		t.Fatalf("level not marked settled")
	}

	// Second call for a settled level completes synchronously.
	synchronous := false
	g.Preload("intro", levelEntities(), func() { synchronous = true })
	if !synchronous {
		t.Fatalf("cached preload did not call onReady synchronously")
	}
	if n := len(loader.Calls()); n != 3 {
		t.Fatalf("cached preload issued loads: %d total", n)
	}
	if n := readyCalls.Load(); n != 1 {
		t.Fatalf("first onReady called %d times", n)
	}
}

func TestPreloadWaitsForEveryLoad(t *testing.T) {
	release := make(chan struct{})
	loader := &recordingLoader{block: map[string]chan struct{}{"wizard-reversed": release}}
	g := NewGate(loader, 5*time.Second, zaptest.NewLogger(t))

	ready := make(chan struct{}, 1)
	g.Preload("intro", levelEntities(), func() { ready <- struct{}{} })

	select {
	case <-ready:
		t.Fatalf("onReady fired before the blocked load settled")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	waitReady(t, ready)
}

func TestPreloadFailuresDoNotBlock(t *testing.T) {
	boom := errors.New("decode failed")
	loader := &recordingLoader{fail: map[string]error{"wizard-reversed": boom}}
	g := NewGate(loader, time.Second, zaptest.NewLogger(t))

	ready := make(chan struct{}, 1)
	ents := levelEntities()
	g.Preload("intro", ents, func() { ready <- struct{}{} })
	waitReady(t, ready)

	if !errors.Is(g.Failed("wizard-reversed"), boom) {
		t.Fatalf("failure not recorded: %v", g.Failed("wizard-reversed"))
	}
	if g.Failed("wizard") != nil {
		t.Fatalf("successful sprite recorded as failed")
	}

	g.MarkDegraded(ents)
	if !ents[0].Degraded {
		t.Fatalf("player with a failed sprite not degraded")
	}
	if ents[1].Degraded {
		t.Fatalf("fireball wrongly degraded")
	}
}

func TestPreloadTimeoutSettlesAsFailure(t *testing.T) {
	never := make(chan struct{})
	defer close(never)
	loader := &recordingLoader{block: map[string]chan struct{}{"wizard": never}}
	g := NewGate(loader, 20*time.Millisecond, zaptest.NewLogger(t))

	ready := make(chan struct{}, 1)
	g.Preload("intro", levelEntities(), func() { ready <- struct{}{} })
	waitReady(t, ready)

	if !errors.Is(g.Failed("wizard"), context.DeadlineExceeded) {
		t.Fatalf("timed out sprite error = %v", g.Failed("wizard"))
	}
}

func TestPreloadNoSprites(t *testing.T) {
	g := NewGate(LoaderFunc(func(context.Context, string) error {
		t.Fatalf("no load expected")
		return nil
	}), time.Second, nil)

	called := false
	g.Preload("empty", nil, func() { called = true })
	if !called {
		t.Fatalf("onReady not called for a level without sprites")
	}
	if !g.Settled("empty") {
		t.Fatalf("empty level not settled")
	}
}

func TestForgetReloads(t *testing.T) {
	loader := &recordingLoader{}
	g := NewGate(loader, time.Second, nil)

	ready := make(chan struct{}, 2)
	g.Preload("intro", levelEntities(), func() { ready <- struct{}{} })
	waitReady(t, ready)

	g.Forget("intro")
	if g.Settled("intro") {
		t.Fatalf("Forget kept the level settled")
	}
	g.Preload("intro", levelEntities(), func() { ready <- struct{}{} })
	waitReady(t, ready)
	if n := len(loader.Calls()); n != 6 {
		t.Fatalf("loads after Forget = %d, want 6", n)
	}
}

func TestLatchFiresExactlyOnce(t *testing.T) {
	const n = 64
	var fired atomic.Int32
	l := NewLatch(n, func() { fired.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < n*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.CountDown()
		}()
	}
	wg.Wait()

	if got := fired.Load(); got != 1 {
		t.Fatalf("latch fired %d times", got)
	}
	if !l.Done() {
		t.Fatalf("latch not done")
	}
}

func TestLatchZeroFiresImmediately(t *testing.T) {
	fired := 0
	l := NewLatch(0, func() { fired++ })
	if fired != 1 || !l.Done() {
		t.Fatalf("zero latch fired=%d done=%v", fired, l.Done())
	}
	l.CountDown()
	if fired != 1 {
		t.Fatalf("extra count down fired again")
	}
}
