package browser

import (
	"container/list"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// tabEntry is one registered tab. The page handle is owned exclusively by
// the registry entry; it is closed when the entry is removed.
type tabEntry struct {
	id           string
	page         playwright.Page
	url          string
	createdAt    time.Time
	lastAccessed time.Time
	elem         *list.Element
}

// tabRegistry is a bounded, access-ordered collection of tabs. Recency is
// tracked with an explicit list (front = least recently used, back = most
// recently used) plus a hash index, so promotion and eviction are O(1).
//
// The registry is not safe for concurrent use; the owning Instance
// serializes all access under its lock.
type tabRegistry struct {
	entries map[string]*tabEntry
	recency *list.List
	seq     int
	logger  *logging.Logger
}

func newTabRegistry(logger *logging.Logger) *tabRegistry {
	return &tabRegistry{
		entries: make(map[string]*tabEntry),
		recency: list.New(),
		logger:  logger,
	}
}

func (r *tabRegistry) len() int {
	return len(r.entries)
}

// nextID generates a tab identifier unique within the instance.
func (r *tabRegistry) nextID() string {
	id := fmt.Sprintf("tab_%d_%d", time.Now().UnixMilli(), r.seq)
	r.seq++
	return id
}

// insert registers a page as the most recently used tab. The caller has
// already created (and optionally navigated) the page; at-capacity eviction
// must happen before the page is created, via evictOldest.
func (r *tabRegistry) insert(id string, page playwright.Page, url string) *tabEntry {
	now := time.Now()
	entry := &tabEntry{
		id:           id,
		page:         page,
		url:          url,
		createdAt:    now,
		lastAccessed: now,
	}
	entry.elem = r.recency.PushBack(entry)
	r.entries[id] = entry
	return entry
}

// get returns the tab and promotes it to most recently used.
func (r *tabRegistry) get(id string) (*tabEntry, bool) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastAccessed = time.Now()
	r.recency.MoveToBack(entry.elem)
	return entry, true
}

// remove unregisters a tab and closes its page best-effort. Returns whether
// an entry existed. A failed page close must not block bookkeeping cleanup.
func (r *tabRegistry) remove(id string) bool {
	entry, ok := r.entries[id]
	if !ok {
		return false
	}
	delete(r.entries, id)
	r.recency.Remove(entry.elem)

	if err := entry.page.Close(); err != nil {
		r.logger.Warnf("Error closing tab %s: %v", id, err)
	}
	return true
}

// evictOldest removes and closes the single least recently used tab.
func (r *tabRegistry) evictOldest() {
	front := r.recency.Front()
	if front == nil {
		return
	}
	entry := front.Value.(*tabEntry)
	delete(r.entries, entry.id)
	r.recency.Remove(front)

	if err := entry.page.Close(); err != nil {
		r.logger.Warnf("Error evicting tab %s: %v", entry.id, err)
	} else {
		r.logger.Infof("Evicted oldest tab %s due to tab limit", entry.id)
	}
}

// list returns tab metadata in current recency order, oldest first.
func (r *tabRegistry) list() []TabInfo {
	infos := make([]TabInfo, 0, len(r.entries))
	for elem := r.recency.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*tabEntry)
		infos = append(infos, TabInfo{
			ID:           entry.id,
			URL:          entry.url,
			CreatedAt:    entry.createdAt,
			LastAccessed: entry.lastAccessed,
		})
	}
	return infos
}

// closeAll closes every tab best-effort and clears the registry.
func (r *tabRegistry) closeAll() {
	for elem := r.recency.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*tabEntry)
		if err := entry.page.Close(); err != nil {
			r.logger.Debugf("Error closing tab %s: %v", entry.id, err)
		}
	}
	r.entries = make(map[string]*tabEntry)
	r.recency.Init()
}
