package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *tabRegistry {
	return newTabRegistry(testLogger(t))
}

func TestTabRegistryInsertAndGet(t *testing.T) {
	r := newTestRegistry(t)

	page := &fakePage{}
	r.insert("t1", page, "https://example.com")

	entry, ok := r.get("t1")
	require.True(t, ok)
	assert.Equal(t, "t1", entry.id)
	assert.Equal(t, "https://example.com", entry.url)
	assert.Equal(t, 1, r.len())

	_, ok = r.get("missing")
	assert.False(t, ok)
}

func TestTabRegistryRecencyOrder(t *testing.T) {
	r := newTestRegistry(t)

	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		r.insert(id, &fakePage{}, "")
	}

	// Access t1, making t2 the least recently used
	_, ok := r.get("t1")
	require.True(t, ok)

	infos := r.list()
	require.Len(t, infos, 5)
	assert.Equal(t, "t2", infos[0].ID)
	assert.Equal(t, "t1", infos[4].ID)
}

func TestTabRegistryEvictOldest(t *testing.T) {
	r := newTestRegistry(t)

	pages := map[string]*fakePage{}
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		page := &fakePage{}
		pages[id] = page
		r.insert(id, page, "")
	}

	// Touch t1 so t2 becomes the eviction candidate
	_, ok := r.get("t1")
	require.True(t, ok)

	r.evictOldest()

	assert.Equal(t, 4, r.len())
	assert.True(t, pages["t2"].isClosed())
	_, ok = r.get("t2")
	assert.False(t, ok)
	_, ok = r.get("t1")
	assert.True(t, ok)
}

func TestTabRegistryEvictOldestEmpty(t *testing.T) {
	r := newTestRegistry(t)
	r.evictOldest() // must not panic
	assert.Equal(t, 0, r.len())
}

func TestTabRegistryRemove(t *testing.T) {
	r := newTestRegistry(t)

	page := &fakePage{}
	r.insert("t1", page, "")

	assert.True(t, r.remove("t1"))
	assert.True(t, page.isClosed())
	assert.Equal(t, 0, r.len())

	assert.False(t, r.remove("t1"))
}

func TestTabRegistryRemoveSurvivesCloseError(t *testing.T) {
	r := newTestRegistry(t)

	page := &fakePage{closeErr: assert.AnError}
	r.insert("t1", page, "")

	assert.True(t, r.remove("t1"))
	assert.Equal(t, 0, r.len())
}

func TestTabRegistryCloseAll(t *testing.T) {
	r := newTestRegistry(t)

	var pages []*fakePage
	for _, id := range []string{"t1", "t2", "t3"} {
		page := &fakePage{}
		pages = append(pages, page)
		r.insert(id, page, "")
	}

	r.closeAll()

	assert.Equal(t, 0, r.len())
	for _, page := range pages {
		assert.True(t, page.isClosed())
	}
	assert.Empty(t, r.list())
}

func TestTabRegistryNextIDUnique(t *testing.T) {
	r := newTestRegistry(t)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := r.nextID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
