package main

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/wizard/assets"
	"go.uber.org/zap"
)

// spriteRegistry caches decoded sprites by id. It is the preload loader, so
// Load runs on preload goroutines while Get runs on the game goroutine.
type spriteRegistry struct {
	mu     sync.RWMutex
	images map[string]*ebiten.Image
	log    *zap.Logger
}

func newSpriteRegistry(log *zap.Logger) *spriteRegistry {
	return &spriteRegistry{images: make(map[string]*ebiten.Image), log: log}
}

func (r *spriteRegistry) Load(ctx context.Context, sprite string) error {
	if r.Get(sprite) != nil {
		return nil
	}
	img, err := assets.DecodeImage(sprite)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.register(sprite, ebiten.NewImageFromImage(img))
	return nil
}

func (r *spriteRegistry) register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	r.mu.Lock()
	r.images[key] = img
	r.mu.Unlock()
}

func (r *spriteRegistry) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.images[key]
}

// Lookup returns a cached sprite, loading sprites that were never preloaded
// (projectiles) on first use.
func (r *spriteRegistry) Lookup(key string) *ebiten.Image {
	if img := r.Get(key); img != nil {
		return img
	}
	if err := r.Load(context.Background(), key); err != nil {
		r.log.Warn("sprite unavailable", zap.String("sprite", key), zap.Error(err))
		r.register(key, missingSprite)
	}
	return r.Get(key)
}

// missingSprite marks ids that failed once so they are not decoded again.
var missingSprite = ebiten.NewImage(1, 1)
