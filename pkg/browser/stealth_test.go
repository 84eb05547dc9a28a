package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/config"
)

func stealthFromConfig(t *testing.T, stealth, headless bool) *StealthConfig {
	t.Helper()
	return NewStealthConfig(&config.Config{
		StealthMode: stealth,
		Headless:    headless,
		Channel:     "chrome",
		Display:     ":99",
		UserDataDir: t.TempDir(),
	})
}

func TestStealthUseXvfb(t *testing.T) {
	tests := []struct {
		name     string
		stealth  bool
		headless bool
		want     bool
	}{
		{"headed stealth needs a display", true, false, true},
		{"headless stealth does not", true, true, false},
		{"plain headed does not", false, false, false},
		{"plain headless does not", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stealthFromConfig(t, tt.stealth, tt.headless)
			assert.Equal(t, tt.want, s.UseXvfb())
		})
	}
}

func TestStealthLaunchArgs(t *testing.T) {
	s := stealthFromConfig(t, true, false)
	args := s.LaunchArgs()

	assert.Contains(t, args, "--no-sandbox")
	assert.Contains(t, args, "--disable-blink-features=AutomationControlled")
	assert.Contains(t, args, "--window-size=1920,1080")
	assert.Contains(t, args, "--display=:99")
}

func TestStealthLaunchArgsHeadless(t *testing.T) {
	s := stealthFromConfig(t, true, true)
	assert.NotContains(t, s.LaunchArgs(), "--display=:99")
}

func TestStealthLaunchArgsDisabled(t *testing.T) {
	s := stealthFromConfig(t, false, true)
	args := s.LaunchArgs()

	assert.Contains(t, args, "--no-sandbox")
	assert.NotContains(t, args, "--disable-blink-features=AutomationControlled")
}

func TestStealthContextOptions(t *testing.T) {
	s := stealthFromConfig(t, true, false)
	opts := s.ContextOptions()

	require.NotNil(t, opts.Viewport)
	assert.Equal(t, 1920, opts.Viewport.Width)
	assert.Equal(t, 1080, opts.Viewport.Height)
	require.NotNil(t, opts.UserAgent)
	assert.Equal(t, DefaultUserAgent, *opts.UserAgent)
	assert.Contains(t, opts.ExtraHttpHeaders, "Accept-Language")
}

func TestStealthContextOptionsWithoutStealth(t *testing.T) {
	s := stealthFromConfig(t, false, true)
	opts := s.ContextOptions()

	require.NotNil(t, opts.Viewport)
	assert.Empty(t, opts.ExtraHttpHeaders)
}
