package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/wizard/common"
	"github.com/milk9111/wizard/config"
	"github.com/milk9111/wizard/engine"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/levels"
	"github.com/milk9111/wizard/prefabs"
	"github.com/milk9111/wizard/preload"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	levelName := flag.String("level", "", "level id to start with (defaults to the config, then the first level)")
	watch := flag.Bool("watch", false, "reload prefabs and levels from disk when they change")
	debug := flag.Bool("debug", false, "enable debug logging and the FPS overlay")
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

	start := cfg.Game.StartLevel
	if *levelName != "" {
		start = *levelName
	}

	catalogOpts := levels.Options{Log: logger.Named("levels")}
	catalog, err := levels.LoadCatalog(catalogOpts)
	if err != nil {
		logger.Fatal("load levels", zap.Error(err))
	}

	sprites := newSpriteRegistry(logger.Named("sprites"))
	surface := newScreenSurface(sprites)
	queue := &engine.FrameQueue{}
	controller := input.NewController(logger.Named("input"))

	sched, err := engine.New(engine.Options{
		Catalog:       catalog,
		Level:         levels.ID(start),
		Surface:       surface,
		Gate:          preload.NewGate(sprites, cfg.Game.PreloadTimeout, logger.Named("preload")),
		Frames:        queue,
		Input:         controller,
		TimeUnit:      cfg.Game.TimeUnit,
		MaxFrameDelta: cfg.Game.MaxFrameDelta,
		SessionLimit:  cfg.Game.SessionLimit,
		Log:           logger.Named("engine"),
	})
	if err != nil {
		logger.Fatal("create scheduler", zap.Error(err))
	}

	game := &Game{
		debug:   *debug,
		focused: true,
		sched:   sched,
		queue:   queue,
		input:   controller,
		surface: surface,
		catalog: catalogOpts,
		log:     logger,
	}

	if *watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			logger.Fatal("watch descriptors", zap.Error(err))
		}
		defer w.Close()
		game.watcher = w
	}

	ebiten.SetWindowSize(int(common.CanvasWidth*cfg.Window.Scale), int(common.CanvasHeight*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}

// watchDirs lists the descriptor directories present next to the binary.
func watchDirs() []string {
	var dirs []string
	for _, d := range []string{"prefabs", "levels", filepath.Join("levels", "scripts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
