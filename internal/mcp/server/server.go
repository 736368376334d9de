package server

import (
	"context"
	"fmt"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/cache"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/config"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/dispatcher"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/prompts"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/resources"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/tools"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/upstream"
)

// Transport modes
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Server wires the whole surface together: one shared cache, one upstream
// client, the populated registry, and the dispatcher on top.
type Server struct {
	cfg        *config.Config
	dispatcher *dispatcher.Dispatcher
	logger     *logging.Logger
}

// New builds a fully registered server from the configuration. Descriptor
// tables are created here, once, and never mutated afterwards.
func New(cfg *config.Config) (*Server, error) {
	logger := logging.ServerLogger

	sharedCache := cache.New(cfg.Cache.DefaultTTL())
	upstreamClient := upstream.New(&cfg.Upstream)

	reg := registry.New()

	logger.Info("Registering MCP tools...")
	if err := tools.NewService(upstreamClient, sharedCache).RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	if err := resources.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	if err := prompts.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("failed to register prompts: %w", err)
	}

	d := dispatcher.New(reg, types.ServerInfo{
		Name:    "shadcn-ui-mcp-unofficial",
		Version: "1.0.0",
	})

	logger.Info("All handlers registered successfully")
	return &Server{cfg: cfg, dispatcher: d, logger: logger}, nil
}

// Start runs the server on the selected transport until the context is
// cancelled or the transport fails.
func (s *Server) Start(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", logging.String("transport", transport))

	switch transport {
	case TransportStdio:
		return NewStdioServer(s.dispatcher).Start(ctx)
	case TransportSSE:
		return NewSSEServer(s.dispatcher, s.cfg.Server.Host, s.cfg.Server.Port).Start(ctx)
	default:
		return fmt.Errorf("unknown transport mode: %s", transport)
	}
}
