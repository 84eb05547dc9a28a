package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/browser/captcha"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/search"
)

// Registry holds the toolset and dispatches calls by name.
type Registry struct {
	order  []string
	byName map[string]Tool
	logger *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{
		byName: make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. Re-registering a name replaces the previous tool.
func (r *Registry) Register(tool Tool) {
	if _, exists := r.byName[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.byName[tool.Name()] = tool
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Descriptors lists all tools in registration order.
func (r *Registry) Descriptors() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		tool := r.byName[name]
		descriptors = append(descriptors, Descriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		})
	}
	return descriptors
}

// Execute dispatches a call to the named tool.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	r.logger.Infof("Calling tool: %s", name)
	result, err := tool.Execute(ctx, args)
	if err != nil {
		r.logger.Errorf("Tool %s failed: %v", name, err)
		return "", err
	}
	return result, nil
}

// DefaultRegistry builds the full toolset over a running browser manager.
func DefaultRegistry(manager *browser.Manager, logger *logging.Logger) *Registry {
	router := NewRouter(manager)
	client := search.NewClient(logger)
	solver := captcha.NewSolver(logger)

	registry := NewRegistry(logger)
	for _, tool := range []Tool{
		// Navigation
		NewNavigateTool(router),
		NewBackTool(router),
		// Interaction
		NewClickTool(router),
		NewFillTool(router),
		NewHoverTool(router),
		// Extraction
		NewScreenshotTool(router),
		NewEvaluateTool(router),
		// Challenges
		NewSolveCaptchaTool(router, solver),
		// Brave Search
		NewSearchTool(router, client),
		NewExtractTool(router, client),
		// Sub-agent sessions
		NewCreateSessionTool(manager),
		NewCloseSessionTool(manager),
		NewListSessionsTool(manager),
		NewCreateTabTool(manager),
		NewCloseTabTool(manager),
		NewListTabsTool(manager),
	} {
		registry.Register(tool)
	}
	return registry
}
