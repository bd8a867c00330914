package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/loop"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

var (
	configPath = flag.String("config", "", "path to a JSON config file")
	gridSize   = flag.Int("grid", config.DefaultGridSize, "board width and height in cells")
	length     = flag.Int("length", config.DefaultStartLength, "starting snake length")
	tickMs     = flag.Int("tick", config.DefaultTickMs, "fixed tick interval in milliseconds")
	ramp       = flag.Bool("ramp", false, "speed up as the score grows")
	easyFood   = flag.Bool("easy-food", false, "place the first food two cells ahead of the snake")
	seed       = flag.Int64("seed", 0, "seed for reproducible food placement (0 = time based)")
	ui         = flag.String("ui", "ansi", "front-end: ansi or tcell")
	autopilot  = flag.Bool("autopilot", false, "start with the autopilot steering")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Errorf("snake: %v", err)
		glog.Flush()
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rng := game.DefaultSource()
	if *seed != 0 {
		rng = game.NewLCG(*seed)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *ui {
	case "ansi":
		return runANSI(ctx, cfg, rng)
	case "tcell":
		return runTcell(ctx, cfg, rng)
	default:
		return fmt.Errorf("unknown ui %q, want ansi or tcell", *ui)
	}
}

// loadConfig starts from the config file (or defaults) and applies only the
// flags given on the command line
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grid":
			cfg.GridSize = *gridSize
		case "length":
			cfg.StartLength = *length
		case "tick":
			cfg.TickMs = *tickMs
		case "ramp":
			cfg.SpeedRamp = *ramp
		case "easy-food":
			cfg.EasyFirstFood = *easyFood
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runANSI(ctx context.Context, cfg config.Config, rng game.RandomSource) error {
	keys := input.NewKeyboardHandler()
	if err := keys.Start(); err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}

	render := renderer.NewTerminalRenderer(os.Stdout, cfg.GridSize)
	render.HideCursor()

	restore := func() {
		render.ShowCursor()
		keys.Stop()
	}
	defer restore()
	defer crashHandler(restore)

	l, err := loop.New(cfg, rng, render, loop.WithAutopilot(game.Autopilot{}, *autopilot))
	if err != nil {
		return err
	}
	if err := l.Run(ctx, keys.Commands()); err != nil {
		return err
	}

	fmt.Printf("\r\n  Thanks for playing! Final score: %d\r\n", l.State().Score)
	return nil
}

func runTcell(ctx context.Context, cfg config.Config, rng game.RandomSource) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	screen.HideCursor()

	restore := screen.Fini
	defer restore()
	defer crashHandler(restore)

	render := renderer.NewScreenRenderer(screen)
	l, err := loop.New(cfg, rng, render, loop.WithAutopilot(game.Autopilot{}, *autopilot))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return l.Run(ctx, render.Commands(ctx))
}

// crashHandler puts the terminal back before reporting a panic, otherwise the
// trace is lost in raw mode
func crashHandler(restore func()) {
	if r := recover(); r != nil {
		restore()
		glog.Errorf("panic: %v\n%s", r, debug.Stack())
		glog.Flush()
		fmt.Fprintf(os.Stderr, "snake crashed: %v\n\n%s", r, debug.Stack())
		os.Exit(2)
	}
}
