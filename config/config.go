package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/pelletier/go-toml"
	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/profile"
	"github.com/robmorgan/blink/rhythm"
	"github.com/robmorgan/blink/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultFPS      = 25
	DefaultLogLevel = "info"
	DefaultColor    = "#FFFFFF00"
)

// GetBlinkConfig returns the default configuration
func GetBlinkConfig() BlinkConfig {
	val, _ := NewBlinkConfig()
	return val
}

// BlinkConfig represents options that configure the global behavior of the program
type BlinkConfig struct {
	// Project logger
	Logger *logrus.Logger `toml:"-"`

	// Debug enables the undisposed provider diagnostic on shutdown.
	Debug bool `toml:"debug"`

	LogLevel string `toml:"log_level"`

	// FPS is the render rate of the wall.
	FPS int `toml:"fps"`

	// Default configures the provider registered as "default".
	Default ProviderConfig `toml:"default"`

	// Profiles are named provider presets indicators can refer to.
	Profiles map[string]ProviderConfig `toml:"profile"`

	// Wall is the LED wall layout.
	Wall WallConfig `toml:"wall"`
}

// Create a new BlinkConfig object with reasonable defaults for real usage
func NewBlinkConfig() (BlinkConfig, error) {
	cfg := BlinkConfig{
		LogLevel: DefaultLogLevel,
		FPS:      DefaultFPS,
		Default:  NewProviderConfig(),
		Profiles: initializeProviderProfiles(),
		Wall:     NewWallConfig(),
	}
	return cfg, cfg.Validate()
}

// ParseConfig parses a configuration from a reader. Anything the file leaves out keeps
// its default value.
func ParseConfig(r io.Reader) (*BlinkConfig, error) {
	var cfg BlinkConfig
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithDefaults fills every unset field from NewBlinkConfig.
func (c BlinkConfig) WithDefaults() BlinkConfig {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}

	if c.Default.Name == "" {
		c.Default.Name = "default"
	}
	c.Default = c.Default.WithDefaults()

	profiles := initializeProviderProfiles()
	for name, p := range c.Profiles {
		if p.Name == "" {
			p.Name = name
		}
		profiles[strings.ToLower(name)] = p.WithDefaults()
	}
	c.Profiles = profiles

	c.Wall = c.Wall.WithDefaults()
	return c
}

// Validate validates the configuration.
func (c BlinkConfig) Validate() error {
	if err := blinkerr.RequirePositive("fps", c.FPS); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.WithStackTrace(err)
	}
	if err := c.Default.Validate(); err != nil {
		return err
	}
	for name, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return errors.WithStackTrace(fmt.Errorf("profile %q: %w", name, err))
		}
	}
	return c.Wall.Validate(c.Profiles)
}

// ProviderConfig configures one blinking provider and the clients it drives.
type ProviderConfig struct {
	// Name is the registry key of the provider.
	Name string `toml:"name"`

	// Color is the on color, a name or #RRGGBB / #AARRGGBB.
	Color string `toml:"color"`

	// IntervalTime is one full on+off cycle in milliseconds.
	IntervalTime int `toml:"interval_time"`

	// RampTime is the color transition time in milliseconds.
	RampTime int `toml:"ramp_time"`

	OpacityFrameTime int `toml:"opacity_frame_time"`
	OpacityRampTime  int `toml:"opacity_ramp_time"`

	// Discrete swaps colors without animating.
	Discrete bool `toml:"discrete"`

	// Clients lists the client types the provider builds, see the profile package.
	Clients []string `toml:"clients"`
}

// NewProviderConfig returns the configuration of the default provider: a blinking
// yellow driving one color and one opacity client.
func NewProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:             "default",
		Color:            DefaultColor,
		IntervalTime:     rhythm.DefaultBlinkingIntervalTime,
		RampTime:         700,
		OpacityFrameTime: 40,
		OpacityRampTime:  700,
		Clients:          append([]string(nil), profile.ClientTypes...),
	}
}

// WithDefaults fills every zero field from NewProviderConfig.
func (p ProviderConfig) WithDefaults() ProviderConfig {
	def := NewProviderConfig()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Color == "" {
		p.Color = def.Color
	}
	if p.IntervalTime == 0 {
		p.IntervalTime = def.IntervalTime
	}
	if p.RampTime == 0 {
		p.RampTime = def.RampTime
	}
	if p.OpacityFrameTime == 0 {
		p.OpacityFrameTime = def.OpacityFrameTime
	}
	if p.OpacityRampTime == 0 {
		p.OpacityRampTime = def.OpacityRampTime
	}
	if len(p.Clients) == 0 {
		p.Clients = def.Clients
	}
	return p
}

// Validate validates the provider configuration.
func (p ProviderConfig) Validate() error {
	if _, err := p.ParsedColor(); err != nil {
		return err
	}
	if err := rhythm.ValidateInterval(p.IntervalTime); err != nil {
		return err
	}
	if err := blinkerr.RequirePositive("RampTime", p.RampTime); err != nil {
		return err
	}
	if err := blinkerr.RequirePositive("OpacityFrameTime", p.OpacityFrameTime); err != nil {
		return err
	}
	if err := blinkerr.RequirePositive("OpacityRampTime", p.OpacityRampTime); err != nil {
		return err
	}

	if len(p.Clients) == 0 {
		return blinkerr.NewInvalidArgument("clients")
	}
	seen := make(map[string]bool, len(p.Clients))
	for _, c := range p.Clients {
		c = strings.ToLower(strings.TrimSpace(c))
		if !profile.Known(c) {
			return errors.WithStackTrace(fmt.Errorf("unknown client type %q", c))
		}
		if seen[c] {
			return errors.WithStackTrace(fmt.Errorf("client type %q listed twice", c))
		}
		seen[c] = true
	}
	return nil
}

// ParsedColor returns Color as a utils.Color.
func (p ProviderConfig) ParsedColor() (utils.Color, error) {
	c, err := utils.ParseColor(p.Color)
	if err != nil {
		return utils.Color{}, errors.WithStackTrace(err)
	}
	return c, nil
}
