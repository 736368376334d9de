// Package server provides the transport bindings that feed decoded
// requests into the dispatcher: a stdio pipe and an HTTP/SSE pair. Both
// are equivalent at the dispatch layer.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/dispatcher"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
)

// maxLineSize bounds a single JSON-RPC frame on the stdio transport
const maxLineSize = 4 * 1024 * 1024

// StdioServer serves the MCP surface over a newline-delimited JSON-RPC
// stream, one request per line. Requests are processed in delivery order.
type StdioServer struct {
	dispatcher *dispatcher.Dispatcher
	in         io.Reader
	out        io.Writer
	logger     *logging.Logger
}

// NewStdioServer creates a stdio transport over the process's standard
// streams.
func NewStdioServer(d *dispatcher.Dispatcher) *StdioServer {
	return &StdioServer{
		dispatcher: d,
		in:         os.Stdin,
		out:        os.Stdout,
		logger:     logging.ServerLogger,
	}
}

// NewStdioServerWith creates a stdio transport over explicit streams
func NewStdioServerWith(d *dispatcher.Dispatcher, in io.Reader, out io.Writer) *StdioServer {
	return &StdioServer{
		dispatcher: d,
		in:         in,
		out:        out,
		logger:     logging.ServerLogger,
	}
}

// Start reads requests until the input stream closes or the context is
// cancelled. A handler failure produces an error response, never a crash.
func (s *StdioServer) Start(ctx context.Context) error {
	s.logger.Info("stdio transport started")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

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

		var request types.Request
		if err := json.Unmarshal(line, &request); err != nil {
			s.write(&types.Response{
				JSONRPC: "2.0",
				Error: &types.Error{
					Code:    -32700,
					Message: fmt.Sprintf("Parse error: %v", err),
				},
			})
			continue
		}

		if response := s.dispatcher.Dispatch(ctx, &request); response != nil {
			s.write(response)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}
	return nil
}

// write marshals a response and emits it as one line on the output stream
func (s *StdioServer) write(response *types.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal response", logging.Error(err))
		return
	}
	if _, err := fmt.Fprintln(s.out, string(data)); err != nil {
		s.logger.Error("failed to write response", logging.Error(err))
	}
}
