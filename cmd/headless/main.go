package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/milk9111/wizard/config"
	"github.com/milk9111/wizard/engine"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/levels"
	"github.com/milk9111/wizard/preload"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
)

const defaultScript = "down:space wait:1 down:shift wait:1"

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	levelName := flag.String("level", "", "level id to play")
	script := flag.String("script", defaultScript, "script: down:<key> up:<key> wait:<frames> force:<verdict> deactivate activate")
	maxFrames := flag.Int("frames", 2000, "stop after this many frames")
	frameTime := flag.Duration("frame-time", 16*time.Millisecond, "simulated time per frame")
	expect := flag.String("expect", "", "exit non-zero unless the run ends on this verdict")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	steps, err := parseScript(*script)
	if err != nil {
		logger.Fatal("parse script", zap.Error(err))
	}

	start := cfg.Game.StartLevel
	if *levelName != "" {
		start = *levelName
	}

	r, err := newRunner(cfg, levels.ID(start), *frameTime, logger)
	if err != nil {
		logger.Fatal("setup", zap.Error(err))
	}
	verdict, err := r.run(steps, *maxFrames)
	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}

	logger.Info("run finished",
		zap.String("level", string(r.sched.Level().ID())),
		zap.Stringer("verdict", verdict),
		zap.Int("frames", r.frames))
	fmt.Println(verdict)
	for _, line := range r.surface.modal {
		fmt.Println("  " + line)
	}

	if *expect != "" {
		want, ok := sim.ParseVerdict(strings.ToLower(*expect))
		if !ok || want != verdict {
			logger.Error("unexpected verdict", zap.String("want", *expect), zap.Stringer("got", verdict))
			logger.Sync()
			os.Exit(1)
		}
	}
}

func newRunner(cfg *config.Config, level levels.ID, frameTime time.Duration, logger *zap.Logger) (*runner, error) {
	r := &runner{
		queue:     &engine.FrameQueue{},
		surface:   &countingSurface{},
		now:       time.Now(),
		frameTime: frameTime,
		loadWait:  cfg.Game.PreloadTimeout + time.Second,
		log:       logger,
	}
	r.input = input.NewController(logger.Named("input"))

	catalog, err := levels.LoadCatalog(levels.Options{Now: r.clock, Log: logger.Named("levels")})
	if err != nil {
		return nil, err
	}
	sched, err := engine.New(engine.Options{
		Catalog:       catalog,
		Level:         level,
		Surface:       r.surface,
		Gate:          preload.NewGate(preload.LoaderFunc(decodeLoader), cfg.Game.PreloadTimeout, logger.Named("preload")),
		Frames:        r.queue,
		Input:         r.input,
		Now:           r.clock,
		TimeUnit:      cfg.Game.TimeUnit,
		MaxFrameDelta: cfg.Game.MaxFrameDelta,
		SessionLimit:  cfg.Game.SessionLimit,
		Log:           logger.Named("engine"),
	})
	if err != nil {
		return nil, err
	}
	r.sched = sched
	return r, nil
}
