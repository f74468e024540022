package utils

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with an alpha channel in [0,1].
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

var (
	Transparent = NewColor(0, 255, 255, 255)
	Black       = NewColor(255, 0, 0, 0)
	White       = NewColor(255, 255, 255, 255)
	Red         = NewColor(255, 255, 0, 0)
	Green       = NewColor(255, 0, 128, 0)
	Yellow      = NewColor(255, 255, 255, 0)
	Orange      = NewColor(255, 255, 165, 0)
	Blue        = NewColor(255, 0, 0, 255)
)

var namedColors = map[string]Color{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"yellow":      Yellow,
	"orange":      Orange,
	"blue":        Blue,
}

// NewColor builds a Color from 8-bit channels.
func NewColor(a, r, g, b uint8) Color {
	return Color{
		RGB:   colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		Alpha: float64(a) / 255,
	}
}

// ParseColor accepts "#RRGGBB", "#AARRGGBB" or one of the named colors.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := namedColors[strings.ToLower(s)]; ok {
		return named, nil
	}

	switch {
	case len(s) == 7 && s[0] == '#':
		rgb, err := colorful.Hex(s)
		if err != nil {
			return Color{}, err
		}
		return Color{RGB: rgb, Alpha: 1}, nil
	case len(s) == 9 && s[0] == '#':
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		rgb, err := colorful.Hex("#" + s[3:])
		if err != nil {
			return Color{}, err
		}
		return Color{RGB: rgb, Alpha: float64(a) / 255}, nil
	}

	return Color{}, fmt.Errorf("unrecognised color %q", s)
}

// GetRGBFromString parses s and panics on failure. Only use it with literal colors.
func GetRGBFromString(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ARGB255 returns the 8-bit channels.
func (c Color) ARGB255() (a, r, g, b uint8) {
	r, g, b = c.RGB.Clamped().RGB255()
	return AlphaByte(c.Alpha), r, g, b
}

// String returns the canonical "#AARRGGBB" form. Providers are registered under it so
// indicators with identical colors share one provider.
func (c Color) String() string {
	a, r, g, b := c.ARGB255()
	return fmt.Sprintf("#%02X%02X%02X%02X", a, r, g, b)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(alpha float64) Color {
	c.Alpha = alpha
	return c
}

// Equal compares the 8-bit representations.
func (c Color) Equal(o Color) bool {
	return c.String() == o.String()
}

// Blend moves from c towards to by t in [0,1]. RGB is blended in RGB space and alpha
// linearly.
func (c Color) Blend(to Color, t float64) Color {
	t = clamp(t, 0, 1)
	return Color{
		RGB:   c.RGB.BlendRgb(to.RGB, t),
		Alpha: c.Alpha + (to.Alpha-c.Alpha)*t,
	}
}

// Over composites c onto an opaque background, scaling by an extra opacity factor.
func (c Color) Over(background colorful.Color, opacity float64) colorful.Color {
	a := clamp(c.Alpha*opacity, 0, 1)
	return background.BlendRgb(c.RGB, a).Clamped()
}
