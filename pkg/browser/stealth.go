package browser

import (
	"os"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/config"
)

// DefaultUserAgent is the user agent presented by stealth contexts.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StealthConfig carries the launch and context options used to make the
// browser look like an ordinary desktop Chrome. Network-level
// fingerprinting tactics are out of scope; this is launch plumbing only.
type StealthConfig struct {
	Enabled     bool
	Headless    bool
	Channel     string
	Display     string
	UserDataDir string
}

// NewStealthConfig derives stealth settings from the runtime config.
func NewStealthConfig(cfg *config.Config) *StealthConfig {
	return &StealthConfig{
		Enabled:     cfg.StealthMode,
		Headless:    cfg.Headless,
		Channel:     cfg.Channel,
		Display:     cfg.Display,
		UserDataDir: cfg.UserDataDir,
	}
}

// UseXvfb reports whether a virtual display should back the browser.
// Headed stealth needs a display; explicit headless never does.
func (s *StealthConfig) UseXvfb() bool {
	return s.Enabled && !s.Headless
}

// LaunchArgs returns the browser process arguments.
func (s *StealthConfig) LaunchArgs() []string {
	if !s.Enabled {
		return []string{"--no-sandbox", "--disable-setuid-sandbox"}
	}

	args := []string{
		// Security
		"--no-sandbox",
		"--disable-setuid-sandbox",
		// Anti-detection
		"--disable-blink-features=AutomationControlled",
		"--disable-features=IsolateOrigins,site-per-process",
		"--disable-site-isolation-trials",
		"--disable-dev-shm-usage",
		"--disable-accelerated-2d-canvas",
		"--disable-gpu",
		"--window-size=1920,1080",
		"--start-maximized",
		// Background throttling gives away automation
		"--disable-background-networking",
		"--disable-background-timer-throttling",
		"--disable-renderer-backgrounding",
		"--disable-backgrounding-occluded-windows",
		// Privacy
		"--disable-notifications",
		"--disable-popup-blocking",
		"--disable-default-apps",
		"--disable-extensions",
	}

	if s.UseXvfb() && s.Display != "" {
		args = append(args, "--display="+s.Display)
	}

	return args
}

// ContextOptions returns the options for new isolated contexts.
func (s *StealthConfig) ContextOptions() playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
		UserAgent:  playwright.String(DefaultUserAgent),
		Locale:     playwright.String("en-US"),
		TimezoneId: playwright.String("America/New_York"),
	}

	if s.Enabled {
		opts.ExtraHttpHeaders = map[string]string{
			"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9," +
				"image/avif,image/webp,image/apng,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.9",
			"Upgrade-Insecure-Requests": "1",
			"Sec-Fetch-Dest":            "document",
			"Sec-Fetch-Mode":            "navigate",
			"Sec-Fetch-Site":            "none",
			"Sec-Fetch-User":            "?1",
		}
	}

	return opts
}

// SetupDisplayEnv makes sure DISPLAY is set for headed operation and
// returns the display in use.
func SetupDisplayEnv(display string) string {
	if current := os.Getenv("DISPLAY"); current != "" {
		return current
	}
	if display == "" {
		display = ":99"
	}
	os.Setenv("DISPLAY", display)
	return display
}

// stealthProbeScript inspects the page for common automation indicators.
const stealthProbeScript = `() => {
    return {
        webdriver: navigator.webdriver,
        plugins: navigator.plugins.length,
        languages: navigator.languages,
        platform: navigator.platform,
        userAgent: navigator.userAgent,
        vendor: navigator.vendor,
        hardwareConcurrency: navigator.hardwareConcurrency,
        maxTouchPoints: navigator.maxTouchPoints,
        chrome: typeof window.chrome !== 'undefined',
        automationControlled: navigator.webdriver === true,
        hasPlugins: navigator.plugins.length > 0,
        hasMimeTypes: navigator.mimeTypes.length > 0,
    };
}`
