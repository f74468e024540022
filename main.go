package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/blink/config"
	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/provider"
	"github.com/robmorgan/blink/registry"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

var errQuit = goerrors.New("quit requested")

func main() {
	pflag.Parse()

	if err := Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errors.PrintErrorWithStackTrace(err))
		os.Exit(1)
	}
}

// Run starts the LED wall and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// initialize the logger
	log := logger.GetProjectLogger()

	// initialize the config
	cfg, err := readConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, rows, cols, fps); err != nil {
		return err
	}
	cfg.Logger = log

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevel(level); err != nil {
		return errors.WithStackTrace(err)
	}

	// keep log lines off the screen
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.WithStackTrace(err)
		}
		defer f.Close()
		logger.SetOutput(f)
		defer logger.SetOutput(os.Stderr)
	}

	clk := clock.RealClock{}
	ui := engine.NewDispatcher("ledwall")
	defer ui.Close()

	newProvider := func(pc config.ProviderConfig) (*provider.Provider, error) {
		return provider.New(pc, clk, ui)
	}

	log.Info("Initializing blinking providers...")
	def, err := newProvider(cfg.Default)
	if err != nil {
		return err
	}
	reg, err := registry.New(def)
	if err != nil {
		def.Dispose()
		return err
	}
	reg.SetDebug(cfg.Debug)
	defer reg.Close()

	if err := registerProfiles(reg, cfg.Profiles, newProvider); err != nil {
		return err
	}

	log.Info("Patching the wall...")
	wall := NewWall(reg, ui, cfg.Default, newProvider, log)
	defer wall.Close()
	if err := wall.PatchIndicators(cfg.Wall.Indicators); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.WithStackTrace(err)
	}
	if err := screen.Init(); err != nil {
		return errors.WithStackTrace(err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	log.WithField("providers", reg.Names()).Info("Running the wall")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ui.Run(ctx)
	})
	g.Go(func() error {
		return renderLoop(ctx, clk, cfg.FPS, ui, func() { wall.Draw(screen) })
	})
	g.Go(func() error {
		return eventLoop(screen, ui, wall)
	})
	g.Go(func() error {
		// unblocks PollEvent
		<-ctx.Done()
		fini()
		return nil
	})

	err = g.Wait()
	log.Println("shutting down ledwall")
	if err != nil && !goerrors.Is(err, errQuit) && !goerrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func renderLoop(ctx context.Context, clk clock.WithTicker, fps int, ui engine.Poster, draw func()) error {
	ticker := clk.NewTicker(effect.FPS(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			ui.Post(draw)
		}
	}
}

func eventLoop(screen tcell.Screen, ui engine.Poster, wall *Wall) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// the screen was finalized
			return errQuit
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				return errQuit
			}
			ui.Post(func() { wall.HandleKey(ev) })
		case *tcell.EventResize:
			ui.Post(screen.Sync)
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
