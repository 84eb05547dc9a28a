package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/sync/semaphore"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// Pool timing defaults.
const (
	// DefaultSweepInterval is how often the idle sweep runs.
	DefaultSweepInterval = 60 * time.Second

	// DefaultIdleTimeout is how long a session may sit idle before the
	// sweep reclaims it.
	DefaultIdleTimeout = 30 * time.Minute

	// DefaultMaxSessions caps concurrently live sub-agent sessions.
	DefaultMaxSessions = 10
)

// browserLauncher launches one dedicated browser process plus an isolated
// context for a session. Abstracted so pool behavior is testable without a
// real browser.
type browserLauncher interface {
	Launch(sessionID string) (playwright.Browser, playwright.BrowserContext, error)
}

// chromiumLauncher launches Chromium processes through the shared
// Playwright runtime, preferring the configured channel and falling back to
// stock Chromium when the channel is unavailable.
type chromiumLauncher struct {
	browserType playwright.BrowserType
	stealth     *StealthConfig
	logger      *logging.Logger
}

func (l *chromiumLauncher) Launch(sessionID string) (playwright.Browser, playwright.BrowserContext, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.stealth.Headless),
		Args:     l.stealth.LaunchArgs(),
	}

	var browser playwright.Browser
	var err error
	if l.stealth.Channel != "" {
		withChannel := opts
		withChannel.Channel = playwright.String(l.stealth.Channel)
		browser, err = l.browserType.Launch(withChannel)
		if err != nil {
			l.logger.Warnf("Failed to launch with channel %s: %v", l.stealth.Channel, err)
			l.logger.Infof("Falling back to default Chromium...")
		}
	}
	if browser == nil {
		browser, err = l.browserType.Launch(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
		}
	}

	context, err := browser.NewContext(l.stealth.ContextOptions())
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			l.logger.Debugf("Error closing browser after failed context creation: %v", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to create context for session %s: %w", sessionID, err)
	}

	return browser, context, nil
}

// PoolOptions configures a PoolManager. Zero values pick the defaults.
type PoolOptions struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	MaxSessions   int64
}

// PoolManager maps sub-agent session identities to browser instances. It
// owns the dedicated browser process behind each instance and reclaims
// idle sessions with a periodic background sweep.
type PoolManager struct {
	mu        sync.Mutex
	launcher  browserLauncher
	instances map[string]*Instance
	browsers  map[string]playwright.Browser
	slots     *semaphore.Weighted
	running   bool
	stopSweep chan struct{}
	sweepDone chan struct{}

	idleTimeout   time.Duration
	sweepInterval time.Duration
	maxSessions   int64

	logger *logging.Logger
}

// NewPoolManager creates a pool backed by the given launcher.
func NewPoolManager(launcher browserLauncher, opts PoolOptions, logger *logging.Logger) *PoolManager {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}

	logger.Infof("Session pool initialized (idle timeout: %s, max sessions: %d)",
		opts.IdleTimeout, opts.MaxSessions)

	return &PoolManager{
		launcher:      launcher,
		instances:     make(map[string]*Instance),
		browsers:      make(map[string]playwright.Browser),
		slots:         semaphore.NewWeighted(opts.MaxSessions),
		idleTimeout:   opts.IdleTimeout,
		sweepInterval: opts.SweepInterval,
		maxSessions:   opts.MaxSessions,
		logger:        logger,
	}
}

// Start marks the pool running and spawns the idle sweep. Idempotent;
// concurrent calls cannot double-start the sweep.
func (p *PoolManager) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.stopSweep = make(chan struct{})
	p.sweepDone = make(chan struct{})

	go p.sweepLoop(p.stopSweep, p.sweepDone)
	p.logger.Infof("Session pool started")
}

// Stop shuts the pool down: the sweep goroutine is stopped and awaited
// before the state lock is taken again (the sweep takes the same lock, so
// waiting under it would deadlock), then every instance and its dedicated
// browser process are closed and the maps cleared. Idempotent.
func (p *PoolManager) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stop := p.stopSweep
	done := p.sweepDone
	p.mu.Unlock()

	close(stop)
	<-done

	p.mu.Lock()
	defer p.mu.Unlock()

	for sessionID, instance := range p.instances {
		if err := instance.Close(); err != nil {
			p.logger.Warnf("Error closing instance %s: %v", sessionID, err)
		}
	}
	p.instances = make(map[string]*Instance)

	for sessionID, browser := range p.browsers {
		if err := browser.Close(); err != nil {
			p.logger.Debugf("Error closing browser for session %s: %v", sessionID, err)
		}
		p.slots.Release(1)
	}
	p.browsers = make(map[string]playwright.Browser)

	p.logger.Infof("Session pool stopped")
}

// CreateBrowser creates a browser instance for a session, generating a
// session id when empty. When the session already has a live instance it is
// returned and touched instead of creating a duplicate: create is
// get-or-create by contract, so racing creators converge on one instance.
// The pool lock covers the whole operation, including the launch.
func (p *PoolManager) CreateBrowser(sessionID string) (*Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil, ErrNotRunning
	}

	if sessionID == "" {
		sessionID = uuid.NewString()[:12]
	}

	if instance, ok := p.instances[sessionID]; ok {
		if !instance.Closed() {
			p.logger.Infof("Reusing existing browser for session %s", sessionID)
			instance.UpdateActivity()
			return instance, nil
		}
		// Stale entry from an externally closed instance; reclaim it
		p.closeSessionLocked(sessionID)
	}

	if !p.slots.TryAcquire(1) {
		return nil, ErrTooManySessions
	}

	p.logger.Infof("Creating new browser instance for session %s", sessionID)
	browser, context, err := p.launcher.Launch(sessionID)
	if err != nil {
		p.slots.Release(1)
		return nil, fmt.Errorf("failed to create browser for session %s: %w", sessionID, err)
	}

	instance := NewInstance(sessionID, context, p.logger)
	p.instances[sessionID] = instance
	p.browsers[sessionID] = browser

	return instance, nil
}

// GetBrowser returns the live instance for a session, touching its
// activity. Returns false when the session is unknown or closed.
func (p *PoolManager) GetBrowser(sessionID string) (*Instance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	instance, ok := p.instances[sessionID]
	if !ok || instance.Closed() {
		return nil, false
	}
	instance.UpdateActivity()
	return instance, true
}

// GetOrCreateBrowser returns the existing instance for a session or
// creates a new one.
func (p *PoolManager) GetOrCreateBrowser(sessionID string) (*Instance, error) {
	if instance, ok := p.GetBrowser(sessionID); ok {
		return instance, nil
	}
	return p.CreateBrowser(sessionID)
}

// CloseBrowser closes a session's instance and its dedicated browser
// process. Returns whether the session existed.
func (p *PoolManager) CloseBrowser(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeSessionLocked(sessionID)
}

// closeSessionLocked removes and closes one session. Caller holds p.mu.
func (p *PoolManager) closeSessionLocked(sessionID string) bool {
	instance, ok := p.instances[sessionID]
	if !ok {
		return false
	}
	delete(p.instances, sessionID)

	if err := instance.Close(); err != nil {
		p.logger.Warnf("Error closing instance %s: %v", sessionID, err)
	}

	if browser, ok := p.browsers[sessionID]; ok {
		delete(p.browsers, sessionID)
		if err := browser.Close(); err != nil {
			p.logger.Debugf("Error closing browser for session %s: %v", sessionID, err)
		}
		p.slots.Release(1)
	}

	p.logger.Infof("Closed browser instance for session %s", sessionID)
	return true
}

// ListSessions returns stats for every live, non-closed instance.
func (p *PoolManager) ListSessions() []InstanceStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]InstanceStats, 0, len(p.instances))
	for _, instance := range p.instances {
		if !instance.Closed() {
			stats = append(stats, instance.Stats())
		}
	}
	return stats
}

// Stats returns a snapshot of the pool state.
func (p *PoolManager) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolStats{
		ActiveSessions: len(p.instances),
		Running:        p.running,
		SweepInterval:  p.sweepInterval,
		IdleTimeout:    p.idleTimeout,
		MaxSessions:    p.maxSessions,
	}
}

// sweepLoop periodically reclaims idle sessions until stopped. A failing
// cycle is logged and does not terminate the loop.
func (p *PoolManager) sweepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	p.logger.Infof("Starting idle sweep (interval: %s)", p.sweepInterval)
	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			p.logger.Infof("Idle sweep stopped")
			return
		case <-ticker.C:
			p.sweepIdle()
		}
	}
}

// sweepIdle closes every session idle beyond the timeout.
func (p *PoolManager) sweepIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	var toClose []string
	for sessionID, instance := range p.instances {
		if idle := instance.IdleFor(); idle > p.idleTimeout {
			p.logger.Infof("Session %s idle for %.0fs, marking for cleanup", sessionID, idle.Seconds())
			toClose = append(toClose, sessionID)
		}
	}

	for _, sessionID := range toClose {
		p.closeSessionLocked(sessionID)
	}

	if len(toClose) > 0 {
		p.logger.Infof("Cleaned up %d inactive browser sessions", len(toClose))
	}
}
