package browser

import "time"

// MaxTabs is the per-instance tab limit. Inserting beyond it evicts the
// least recently used tab, one eviction per insert.
const MaxTabs = 15

// TabInfo is a read-only metadata snapshot of one tab.
type TabInfo struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// InstanceStats describes one browser instance for observability listings.
type InstanceStats struct {
	SessionID    string    `json:"session_id"`
	TabCount     int       `json:"tab_count"`
	MaxTabs      int       `json:"max_tabs"`
	IsActive     bool      `json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
	IdleSeconds  float64   `json:"idle_seconds"`
	Closed       bool      `json:"closed"`
}

// PoolStats describes the session pool state.
type PoolStats struct {
	ActiveSessions int           `json:"active_sessions"`
	Running        bool          `json:"running"`
	SweepInterval  time.Duration `json:"sweep_interval"`
	IdleTimeout    time.Duration `json:"idle_timeout"`
	MaxSessions    int64         `json:"max_sessions"`
}
