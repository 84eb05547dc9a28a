package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/tools"
)

// stdioRequest is one newline-delimited request on the stdio transport.
type stdioRequest struct {
	ID        interface{}     `json:"id,omitempty"`
	Method    string          `json:"method"`
	Name      string          `json:"name,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// stdioResponse is the reply to one request, on one line.
type stdioResponse struct {
	ID     interface{} `json:"id,omitempty"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// StdioServer serves the toolset over newline-delimited JSON on a byte
// stream, one request per line.
type StdioServer struct {
	registry *tools.Registry
	logger   *logging.Logger
}

// NewStdio creates a stdio transport for the toolset.
func NewStdio(registry *tools.Registry, logger *logging.Logger) *StdioServer {
	return &StdioServer{registry: registry, logger: logger}
}

// Run reads requests until EOF or context cancellation. Malformed lines
// get an error response and the loop continues.
func (s *StdioServer) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Infof("stdio transport started")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req stdioRequest
		if err := json.Unmarshal(line, &req); err != nil {
			encoder.Encode(stdioResponse{Error: "invalid request: " + err.Error()})
			continue
		}
		encoder.Encode(s.handle(ctx, req))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdio transport read error: %w", err)
	}
	s.logger.Infof("stdio transport closed")
	return nil
}

func (s *StdioServer) handle(ctx context.Context, req stdioRequest) stdioResponse {
	switch req.Method {
	case "tools/list":
		return stdioResponse{ID: req.ID, Result: s.registry.Descriptors()}
	case "tools/call":
		if req.Name == "" {
			return stdioResponse{ID: req.ID, Error: "tool name is required"}
		}
		result, err := s.registry.Execute(ctx, req.Name, req.Arguments)
		if err != nil {
			return stdioResponse{ID: req.ID, Error: err.Error()}
		}
		return stdioResponse{ID: req.ID, Result: result}
	default:
		return stdioResponse{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}
