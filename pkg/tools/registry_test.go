package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// The logging package caches its log directory for the lifetime of the
// process, so every test in this binary must point it at one directory
// that is never removed mid-run; a per-test t.TempDir would be deleted
// while later tests still depend on it.
var (
	sharedLogDirOnce sync.Once
	sharedLogDirPath string
	sharedLogDirErr  error
)

func sharedLogDir(t *testing.T) string {
	t.Helper()
	sharedLogDirOnce.Do(func() {
		sharedLogDirPath, sharedLogDirErr = os.MkdirTemp("", "tools-test-logs-")
	})
	if sharedLogDirErr != nil {
		t.Fatalf("failed to create shared log dir: %v", sharedLogDirErr)
	}
	return sharedLogDirPath
}

func testToolsLogger(t *testing.T) *logging.Logger {
	t.Helper()
	t.Setenv("BRAVE_SCRAPER_LOG_DIR", sharedLogDir(t))
	logger, err := logging.NewLogger("tools-test")
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

// stubTool is a canned tool for registry tests.
type stubTool struct {
	name   string
	result string
	err    error
	calls  int
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub tool " + s.name }
func (s *stubTool) Schema() map[string]interface{} {
	return BaseToolSchema(map[string]interface{}{}, nil)
}
func (s *stubTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	s.calls++
	return s.result, s.err
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))
	tool := &stubTool{name: "alpha", result: "ok"}
	registry.Register(tool)

	got, ok := registry.Get("alpha")
	require.True(t, ok)
	assert.Same(t, tool, got.(*stubTool))

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistryDescriptorsPreserveOrder(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))
	registry.Register(&stubTool{name: "zeta"})
	registry.Register(&stubTool{name: "alpha"})
	registry.Register(&stubTool{name: "mid"})

	descriptors := registry.Descriptors()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "zeta", descriptors[0].Name)
	assert.Equal(t, "alpha", descriptors[1].Name)
	assert.Equal(t, "mid", descriptors[2].Name)
	assert.NotEmpty(t, descriptors[0].Description)
	assert.NotNil(t, descriptors[0].InputSchema)
}

func TestRegistryReRegisterReplaces(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))
	registry.Register(&stubTool{name: "dup", result: "old"})
	replacement := &stubTool{name: "dup", result: "new"}
	registry.Register(replacement)

	require.Len(t, registry.Descriptors(), 1)
	result, err := registry.Execute(context.Background(), "dup", nil)
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestRegistryExecute(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))
	tool := &stubTool{name: "alpha", result: "done"}
	registry.Register(tool)

	result, err := registry.Execute(context.Background(), "alpha", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, 1, tool.calls)
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))

	_, err := registry.Execute(context.Background(), "ghost", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool: ghost")
}

func TestRegistryExecutePropagatesToolError(t *testing.T) {
	registry := NewRegistry(testToolsLogger(t))
	wantErr := fmt.Errorf("engine fell over")
	registry.Register(&stubTool{name: "broken", err: wantErr})

	_, err := registry.Execute(context.Background(), "broken", nil)
	assert.ErrorIs(t, err, wantErr)
}

func TestBaseToolSchema(t *testing.T) {
	schema := BaseToolSchema(map[string]interface{}{
		"query": map[string]interface{}{"type": "string"},
	}, []string{"query"})

	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema, "properties")
	assert.Equal(t, []string{"query"}, schema["required"])

	// No required block when nothing is required
	schema = BaseToolSchema(map[string]interface{}{}, nil)
	assert.NotContains(t, schema, "required")
}

func TestWithTargetProperties(t *testing.T) {
	props := withTargetProperties(map[string]interface{}{
		"url": map[string]interface{}{"type": "string"},
	})

	assert.Contains(t, props, "url")
	assert.Contains(t, props, "session_id")
	assert.Contains(t, props, "tab_id")
}

func TestDecodeArgs(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, decodeArgs(json.RawMessage(`{"name":"x"}`), &target))
	assert.Equal(t, "x", target.Name)

	// Empty input is an empty object
	target.Name = ""
	require.NoError(t, decodeArgs(nil, &target))
	assert.Empty(t, target.Name)

	assert.Error(t, decodeArgs(json.RawMessage(`{bad`), &target))
}
