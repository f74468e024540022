package config

import (
	"strings"
	"testing"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlinkConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := NewBlinkConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultFPS, cfg.FPS)
	assert.Equal(t, 2500, cfg.Default.IntervalTime)
	assert.Equal(t, []string{profile.ClientTypeColor, profile.ClientTypeOpacity}, cfg.Default.Clients)
	assert.Contains(t, cfg.Profiles, "alarm")
	assert.Len(t, cfg.Wall.Indicators, DefaultWallRows*DefaultWallCols)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	doc := `
debug = true
fps = 50

[default]
color = "#FF00FF00"
interval_time = 1000

[profile.Critical]
color = "red"
interval_time = 300
discrete = true
clients = ["color"]

[wall]
rows = 1
cols = 2

[[wall.indicator]]
name = "pump"
row = 0
col = 0
profile = "critical"

[[wall.indicator]]
name = "door"
row = 0
col = 1
steady = true
on = true
`
	cfg, err := ParseConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 50, cfg.FPS)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	assert.Equal(t, "default", cfg.Default.Name)
	assert.Equal(t, 1000, cfg.Default.IntervalTime)
	assert.Equal(t, 700, cfg.Default.RampTime)

	critical, ok := cfg.Profiles["critical"]
	require.True(t, ok)
	assert.Equal(t, "Critical", critical.Name)
	assert.True(t, critical.Discrete)
	assert.Equal(t, []string{"color"}, critical.Clients)
	assert.Equal(t, 40, critical.OpacityFrameTime)

	// presets stay available next to custom profiles
	assert.Contains(t, cfg.Profiles, "warning")

	require.Len(t, cfg.Wall.Indicators, 2)
	assert.Equal(t, "pump", cfg.Wall.Indicators[0].Name)
	assert.True(t, cfg.Wall.Indicators[1].Steady)
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  string
	}{
		{"negative interval", "[default]\ninterval_time = -5"},
		{"half period is zero", "[default]\ninterval_time = 1"},
		{"bad color", "[default]\ncolor = \"mauve\""},
		{"unknown client", "[default]\nclients = [\"sound\"]"},
		{"duplicate client", "[default]\nclients = [\"color\", \"color\"]"},
		{"unknown profile", "[[wall.indicator]]\nname = \"x\"\nprofile = \"nope\""},
		{"outside wall", "[wall]\nrows = 1\ncols = 1\n[[wall.indicator]]\nname = \"x\"\nrow = 3"},
		{"bad log level", "log_level = \"loud\""},
		{"not toml", "fps = = 1"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig(strings.NewReader(testCase.doc))
			assert.Error(t, err)
		})
	}
}

func TestProviderConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := NewProviderConfig()
	require.NoError(t, cfg.Validate())

	cfg.RampTime = 0
	assert.True(t, blinkerr.IsInvalidConfiguration(cfg.Validate()))

	cfg = NewProviderConfig()
	cfg.IntervalTime = 0
	assert.True(t, blinkerr.IsInvalidConfiguration(cfg.Validate()))

	cfg = NewProviderConfig()
	cfg.Clients = nil
	assert.True(t, blinkerr.IsInvalidArgument(cfg.Validate()))
}

func TestProviderConfigParsedColor(t *testing.T) {
	t.Parallel()

	c, err := NewProviderConfig().ParsedColor()
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF00", c.String())
}
