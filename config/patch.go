package config

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/utils"
)

const (
	DefaultWallRows = 4
	DefaultWallCols = 8

	// Steady indicators show these colors when they are not blinking.
	DefaultOnColor  = "green"
	DefaultOffColor = "red"
)

// WallConfig lays out the LED wall.
type WallConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// Indicators are placed on the grid. When empty the wall is filled by PatchIndicators.
	Indicators []PatchedIndicator `toml:"indicator"`
}

// PatchedIndicator stores config info for one LED on the wall
type PatchedIndicator struct {
	Name string `toml:"name"`
	Row  int    `toml:"row"`
	Col  int    `toml:"col"`

	// Profile selects a provider preset. When empty, Color selects a provider created
	// for that color, and when both are empty the default provider is used.
	Profile string `toml:"profile"`
	Color   string `toml:"color"`

	// Steady indicators do not follow their provider and show the on or off color.
	Steady bool `toml:"steady"`
	On     bool `toml:"on"`
}

// NewWallConfig returns the default layout.
func NewWallConfig() WallConfig {
	return WallConfig{
		Rows:       DefaultWallRows,
		Cols:       DefaultWallCols,
		Indicators: PatchIndicators(DefaultWallRows, DefaultWallCols),
	}
}

// WithDefaults fills the grid size and, when no indicator is configured, patches a full
// wall.
func (w WallConfig) WithDefaults() WallConfig {
	if w.Rows == 0 {
		w.Rows = DefaultWallRows
	}
	if w.Cols == 0 {
		w.Cols = DefaultWallCols
	}
	if len(w.Indicators) == 0 {
		w.Indicators = PatchIndicators(w.Rows, w.Cols)
	}
	return w
}

// Validate checks every indicator fits the grid, refers to a known profile and does
// not share a cell with another one.
func (w WallConfig) Validate(profiles map[string]ProviderConfig) error {
	if err := blinkerr.RequirePositive("rows", w.Rows); err != nil {
		return err
	}
	if err := blinkerr.RequirePositive("cols", w.Cols); err != nil {
		return err
	}

	cells := make(map[[2]int]string, len(w.Indicators))
	for _, ind := range w.Indicators {
		if ind.Row < 0 || ind.Row >= w.Rows || ind.Col < 0 || ind.Col >= w.Cols {
			return errors.WithStackTrace(fmt.Errorf("indicator %q at %d,%d is outside the %dx%d wall", ind.Name, ind.Row, ind.Col, w.Rows, w.Cols))
		}
		if other, ok := cells[[2]int{ind.Row, ind.Col}]; ok {
			return errors.WithStackTrace(fmt.Errorf("indicators %q and %q share cell %d,%d", other, ind.Name, ind.Row, ind.Col))
		}
		cells[[2]int{ind.Row, ind.Col}] = ind.Name

		if ind.Profile != "" {
			if _, ok := profiles[strings.ToLower(ind.Profile)]; !ok {
				return errors.WithStackTrace(fmt.Errorf("indicator %q uses unknown profile %q", ind.Name, ind.Profile))
			}
		}
		if ind.Color != "" {
			if _, err := utils.ParseColor(ind.Color); err != nil {
				return errors.WithStackTrace(fmt.Errorf("indicator %q: %w", ind.Name, err))
			}
		}
	}
	return nil
}

// PatchIndicators fills a rows x cols wall: an alarm row, a warning row, a row of
// per-color providers and steady status LEDs, the rest on the default provider.
func PatchIndicators(rows, cols int) []PatchedIndicator {
	s := make([]PatchedIndicator, 0, rows*cols)

	for row := 0; row < rows; row++ {
		switch row {
		case 0:
			s = append(s, patchProfileRow(row, cols, "alarm")...)
		case 1:
			s = append(s, patchProfileRow(row, cols, "warning")...)
		case 2:
			s = append(s, patchColorRow(row, cols)...)
		default:
			s = append(s, patchProfileRow(row, cols, "")...)
		}
	}

	return s
}

func patchProfileRow(row, cols int, profile string) []PatchedIndicator {
	prefix := profile
	if prefix == "" {
		prefix = "led"
	}

	out := make([]PatchedIndicator, 0, cols)
	for col := 0; col < cols; col++ {
		out = append(out, PatchedIndicator{
			Name:    fmt.Sprintf("%s_%d_%d", prefix, row, col),
			Row:     row,
			Col:     col,
			Profile: profile,
		})
	}
	return out
}

func patchColorRow(row, cols int) []PatchedIndicator {
	colors := []string{"yellow", "blue", "white"}

	out := make([]PatchedIndicator, 0, cols)
	for col := 0; col < cols; col++ {
		ind := PatchedIndicator{
			Name: fmt.Sprintf("status_%d_%d", row, col),
			Row:  row,
			Col:  col,
		}
		// the last two LEDs of the row are steady, one on and one off
		switch {
		case col == cols-1:
			ind.Steady = true
		case col == cols-2:
			ind.Steady = true
			ind.On = true
		default:
			ind.Color = colors[col%len(colors)]
		}
		out = append(out, ind)
	}
	return out
}
