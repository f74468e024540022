package main

import (
	"fmt"
	"os"

	"github.com/robmorgan/blink/config"
	"github.com/spf13/pflag"
)

var (
	configPath = ""
	logPath    = "ledwall.log"
	verbose    = false
	rows       = 0
	cols       = 0
	fps        = 0
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "configuration file (defaults are used when empty)")
	pflag.StringVar(&logPath, "log", logPath, "log file, logs go to stderr when empty")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
	pflag.IntVar(&rows, "rows", rows, "wall rows, repatches the wall")
	pflag.IntVar(&cols, "cols", cols, "wall columns, repatches the wall")
	pflag.IntVar(&fps, "fps", fps, "render frames per second")
}

func readConfig() (*config.BlinkConfig, error) {
	if configPath == "" {
		cfg, err := config.NewBlinkConfig()
		if err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return config.ParseConfig(f)
}

// applyFlags overrides cfg with the command line. Changing the grid size throws away
// the configured indicators and patches a full wall of the new size.
func applyFlags(cfg *config.BlinkConfig, rows, cols, fps int) error {
	if fps != 0 {
		cfg.FPS = fps
	}
	if rows != 0 || cols != 0 {
		if rows != 0 {
			cfg.Wall.Rows = rows
		}
		if cols != 0 {
			cfg.Wall.Cols = cols
		}
		cfg.Wall.Indicators = config.PatchIndicators(cfg.Wall.Rows, cfg.Wall.Cols)
	}
	return cfg.Validate()
}
