package browser

import (
	"os"
	"os/exec"
	"time"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// XvfbManager runs an Xvfb virtual display so the browser can operate
// headed on machines without a real X server.
type XvfbManager struct {
	display string
	screen  string
	cmd     *exec.Cmd
	running bool
	logger  *logging.Logger
}

// NewXvfbManager creates a manager for the given display. A screen of ""
// uses 1920x1080x24.
func NewXvfbManager(display, screen string, logger *logging.Logger) *XvfbManager {
	if display == "" {
		display = ":99"
	}
	if screen == "" {
		screen = "1920x1080x24"
	}
	return &XvfbManager{
		display: display,
		screen:  screen,
		logger:  logger,
	}
}

// Start launches Xvfb and waits for the display to accept connections.
// Returns false when Xvfb is unavailable or fails to come up; callers are
// expected to fall back to headless mode.
func (x *XvfbManager) Start() bool {
	if x.displayReady() {
		x.logger.Infof("Xvfb already running on display %s", x.display)
		x.running = true
		return true
	}

	if _, err := exec.LookPath("Xvfb"); err != nil {
		x.logger.Warnf("Xvfb not found. Install with: apt-get install xvfb")
		return false
	}

	x.logger.Infof("Starting Xvfb on display %s", x.display)
	cmd := exec.Command(
		"Xvfb", x.display,
		"-screen", "0", x.screen,
		"-ac",
		"+extension", "RANDR",
		"+extension", "RENDER",
		"+extension", "GLX",
		"-noreset",
	)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		x.logger.Errorf("Error starting Xvfb: %v", err)
		return false
	}
	x.cmd = cmd

	// Give the server a moment, then verify the display is reachable
	for i := 0; i < 10; i++ {
		time.Sleep(200 * time.Millisecond)
		if x.displayReady() {
			x.logger.Infof("Xvfb started successfully on %s", x.display)
			x.running = true
			return true
		}
	}

	x.logger.Errorf("Xvfb failed to start")
	x.Stop()
	return false
}

// Stop terminates the Xvfb process, escalating to SIGKILL after a grace
// period. Best-effort; never returns an error.
func (x *XvfbManager) Stop() {
	if x.cmd == nil || x.cmd.Process == nil {
		x.running = false
		return
	}

	if err := x.cmd.Process.Signal(os.Interrupt); err != nil {
		x.cmd.Process.Kill()
	}

	done := make(chan struct{})
	go func() {
		x.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		x.cmd.Process.Kill()
		<-done
	}

	x.cmd = nil
	x.running = false
	x.logger.Infof("Xvfb stopped")
}

// Running reports whether the managed display is up.
func (x *XvfbManager) Running() bool {
	return x.running
}

// displayReady checks whether an X server answers on the configured display.
func (x *XvfbManager) displayReady() bool {
	probe := exec.Command("xdpyinfo")
	probe.Env = append(os.Environ(), "DISPLAY="+x.display)
	if err := probe.Start(); err != nil {
		return false
	}

	done := make(chan error, 1)
	go func() { done <- probe.Wait() }()
	select {
	case err := <-done:
		return err == nil
	case <-time.After(2 * time.Second):
		probe.Process.Kill()
		<-done
		return false
	}
}
