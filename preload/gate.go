package preload

import (
	"context"
	"sync"
	"time"

	"github.com/milk9111/wizard/entity"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single sprite load.
const DefaultTimeout = 10 * time.Second

// Loader loads one sprite. It must return exactly once per call.
type Loader interface {
	Load(ctx context.Context, sprite string) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, sprite string) error

func (f LoaderFunc) Load(ctx context.Context, sprite string) error {
	return f(ctx, sprite)
}

// Gate defers a level start until every sprite it references has settled.
// A failed or timed out load still counts as settled; the failure is recorded
// and can be queried with Failed.
type Gate struct {
	loader  Loader
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	settled map[string]bool
	failed  map[string]error
}

func NewGate(loader Loader, timeout time.Duration, log *zap.Logger) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{
		loader:  loader,
		timeout: timeout,
		log:     log,
		settled: make(map[string]bool),
		failed:  make(map[string]error),
	}
}

// Preload loads the sprites of entities and calls onReady exactly once when
// all loads have settled. If the level settled before, onReady runs
// synchronously and no loads are issued. Otherwise onReady runs on the
// goroutine of the last load to settle.
func (g *Gate) Preload(level string, entities []*entity.Entity, onReady func()) {
	if g.Settled(level) {
		onReady()
		return
	}

	sprites := distinctSprites(entities)
	g.log.Debug("preload: start", zap.String("level", level), zap.Int("sprites", len(sprites)))

	latch := NewLatch(len(sprites), func() {
		g.mu.Lock()
		g.settled[level] = true
		g.mu.Unlock()
		g.log.Debug("preload: settled", zap.String("level", level))
		onReady()
	})
	for _, s := range sprites {
		go g.load(s, latch)
	}
}

func (g *Gate) load(sprite string, latch *Latch) {
	defer latch.CountDown()

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- g.loader.Load(ctx, sprite) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	g.mu.Lock()
	if err != nil {
		g.failed[sprite] = err
	} else {
		delete(g.failed, sprite)
	}
	g.mu.Unlock()

	if err != nil {
		g.log.Warn("preload: sprite failed", zap.String("sprite", sprite), zap.Error(err))
	}
}

// Settled reports whether the level's assets have all settled once.
func (g *Gate) Settled(level string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled[level]
}

// Forget drops the cached settlement of a level so the next Preload loads
// its sprites again.
func (g *Gate) Forget(level string) {
	g.mu.Lock()
	delete(g.settled, level)
	g.mu.Unlock()
}

// Failed returns the recorded load error of a sprite, or nil.
func (g *Gate) Failed(sprite string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failed[sprite]
}

// MarkDegraded flags every entity with a failed sprite.
func (g *Gate) MarkDegraded(entities []*entity.Entity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range entities {
		e.Degraded = false
		for _, s := range e.Sprites() {
			if g.failed[s] != nil {
				e.Degraded = true
			}
		}
	}
}

func distinctSprites(entities []*entity.Entity) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entities {
		for _, s := range e.Sprites() {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
