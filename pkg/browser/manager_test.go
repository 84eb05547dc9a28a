package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Setenv("BRAVE_SCRAPER_LOG_DIR", sharedLogDir(t))
	return NewManager(&config.Config{
		StealthMode: true,
		Headless:    true,
		Channel:     "chrome",
		Display:     ":99",
		UserDataDir: t.TempDir(),
		MaxSessions: 2,
	})
}

func TestManagerInitialState(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, StateUninitialized, m.State())
}

func TestManagerAccessorsBeforeStart(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Page()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = m.Pool()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = m.Gateway()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Stop())
	assert.Equal(t, StateUninitialized, m.State())
}

func TestManagerCheckStealthBeforeStart(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CheckStealth()
	assert.ErrorIs(t, err, ErrNotInitialized)
}
