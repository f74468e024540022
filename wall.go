package main

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/blink/config"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/engine/scale"
	"github.com/robmorgan/blink/provider"
	"github.com/robmorgan/blink/registry"
	"github.com/robmorgan/blink/utils"
	"github.com/sirupsen/logrus"
)

const (
	progressBarWidth  = 24
	progressFullChar  = "█"
	progressEmptyChar = "░"

	cellWidth  = 4
	cellHeight = 2
	ledChar    = '█'

	minInterval = 100
	maxInterval = 20000
)

var background = colorful.Color{}

// Wall is a grid of indicators drawn on a terminal screen. Every method that touches the
// screen runs on the UI dispatcher.
type Wall struct {
	registry    *registry.Registry
	ui          *engine.Dispatcher
	defaults    config.ProviderConfig
	newProvider func(config.ProviderConfig) (*provider.Provider, error)
	log         *logrus.Logger

	onColor  utils.Color
	offColor utils.Color

	mu         sync.Mutex
	indicators []*indicator
	blinking   bool
	closed     bool
}

// NewWall creates an empty wall. newProvider builds the providers created on demand for
// indicator colors.
func NewWall(reg *registry.Registry, ui *engine.Dispatcher, defaults config.ProviderConfig, newProvider func(config.ProviderConfig) (*provider.Provider, error), log *logrus.Logger) *Wall {
	return &Wall{
		registry:    reg,
		ui:          ui,
		defaults:    defaults,
		newProvider: newProvider,
		log:         log,
		onColor:     utils.GetRGBFromString(config.DefaultOnColor),
		offColor:    utils.GetRGBFromString(config.DefaultOffColor),
		blinking:    true,
	}
}

// Blinking reports whether indicators follow their providers.
func (w *Wall) Blinking() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blinking
}

// ToggleBlinking switches every non-steady indicator between following its provider and
// showing its steady color.
func (w *Wall) ToggleBlinking() {
	w.mu.Lock()
	w.blinking = !w.blinking
	blinking := w.blinking
	w.mu.Unlock()

	w.log.WithFields(logrus.Fields{"blinking": blinking}).Info("Toggled wall blinking")
}

// ChangeInterval multiplies the default provider's interval by factor, within bounds.
func (w *Wall) ChangeInterval(factor float64) {
	p := w.registry.DefaultProvider()
	interval := int(math.Round(float64(p.BlinkingIntervalTime()) * factor))
	if interval < minInterval {
		interval = minInterval
	}
	if interval > maxInterval {
		interval = maxInterval
	}

	if err := p.SetBlinkingIntervalTime(interval); err != nil {
		w.log.Errorf("could not change interval: %v", err)
		return
	}
	w.log.WithFields(logrus.Fields{"interval_ms": interval}).Info("Changed default blinking interval")
}

func (w *Wall) colorOf(ind *indicator) utils.Color {
	if ind.provider == nil || !w.blinking {
		if ind.on {
			return w.onColor
		}
		return w.offColor
	}
	return ind.brush.Color()
}

// Colors returns the color every indicator shows right now, keyed by name.
func (w *Wall) Colors() map[string]utils.Color {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]utils.Color, len(w.indicators))
	for _, ind := range w.indicators {
		out[ind.name] = w.colorOf(ind)
	}
	return out
}

// HandleKey applies a key press. It returns false when the key asks to quit.
func (w *Wall) HandleKey(ev *tcell.EventKey) bool {
	if isQuitKey(ev) {
		return false
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case ' ':
			w.ToggleBlinking()
		case '+':
			w.ChangeInterval(0.5)
		case '-':
			w.ChangeInterval(2)
		}
	}
	return true
}

// Draw renders the wall and the status line.
func (w *Wall) Draw(screen tcell.Screen) {
	screen.Clear()

	w.mu.Lock()
	bottom := 0
	for _, ind := range w.indicators {
		style := tcell.StyleDefault.Foreground(toTcell(w.colorOf(ind).Over(background, 1)))

		x0 := ind.col*(cellWidth+1) + 1
		y0 := ind.row*(cellHeight+1) + 1
		for y := y0; y < y0+cellHeight; y++ {
			for x := x0; x < x0+cellWidth; x++ {
				screen.SetContent(x, y, ledChar, nil, style)
			}
		}
		if y0+cellHeight > bottom {
			bottom = y0 + cellHeight
		}
	}
	blinking := w.blinking
	w.mu.Unlock()

	drawText(screen, 1, bottom+1, w.status(blinking), tcell.StyleDefault)
	drawText(screen, 1, bottom+2, "q quit  space blink/steady  + faster  - slower", tcell.StyleDefault.Dim(true))
	screen.Show()
}

func (w *Wall) status(blinking bool) string {
	p := w.registry.DefaultProvider()

	beat := "off"
	if p.BlinkingBeat() {
		beat = "on"
	}
	mode := "blinking"
	if !blinking {
		mode = "steady"
	}

	return fmt.Sprintf("%s  interval %dms  beat %-3s  opacity %s  providers %d",
		mode, p.BlinkingIntervalTime(), beat, opacityBar(p.OpacityBeat(), progressBarWidth), w.registry.Len())
}

// Close releases every brush and provider reference the wall holds.
func (w *Wall) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	indicators := w.indicators
	w.indicators = nil
	w.mu.Unlock()

	for _, ind := range indicators {
		ind.release()
		if ind.provider != nil {
			ind.provider.Release()
		}
	}
}

func opacityBar(opacity float64, width int) string {
	full := int(math.Round(scale.Unit(opacity) * float64(width)))
	return strings.Repeat(progressFullChar, full) + strings.Repeat(progressEmptyChar, width-full)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
