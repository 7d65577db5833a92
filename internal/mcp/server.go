package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

const (
	ServerName    = "fullframe"
	ServerVersion = "0.1.0"
)

// BackendFactory opens a window-system backend for a single request.
type BackendFactory func(cfg *config.Config) (platform.Backend, error)

// Server is the MCP server exposing window descriptor construction.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	open      BackendFactory

	// mu serializes backend use; X11 connections are opened per request.
	mu sync.Mutex
}

// NewServer creates a new MCP server. open is called per request that needs
// display access.
func NewServer(cfg *config.Config, open BackendFactory) *Server {
	s := &Server{
		config: cfg,
		open:   open,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "describe_window",
		Description: "Build the window descriptor for the given settings. Fullscreen requests are resolved against the primary monitor as a borderless, undecorated, always-on-top window.",
	}, s.handleDescribeWindow)
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List active monitors and which one is primary.",
	}, s.handleListMonitors)
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) handleDescribeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DescribeWindowInput) (*mcpsdk.CallToolResult, DescribeWindowOutput, error) {
	cfg := *s.config
	if err := cfg.ApplyOverrides(args.overrides()); err != nil {
		return nil, DescribeWindowOutput{}, err
	}
	settings := cfg.WindowSettings()

	if args.Headless || !settings.Fullscreen {
		return nil, DescribeWindowOutput{Descriptor: window.Build(settings, platform.Unavailable())}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var query *platform.PrimaryMonitorQuery
	if backend, err := s.open(&cfg); err != nil {
		query = platform.DisconnectedMonitorQuery(err)
	} else {
		defer backend.Close()
		query = platform.NewPrimaryMonitorQuery(backend)
	}

	out := DescribeWindowOutput{Descriptor: window.Build(settings, query)}
	if err := query.LastErr(); err != nil {
		out.MonitorError = err.Error()
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backend, err := s.open(s.config)
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("failed to open display: %w", err)
	}
	defer backend.Close()

	displays, err := backend.Displays()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("failed to list monitors: %w", err)
	}

	out := ListMonitorsOutput{Monitors: make([]MonitorEntry, 0, len(displays))}
	for _, d := range displays {
		out.Monitors = append(out.Monitors, MonitorEntry{
			ID:      d.ID,
			Name:    d.Name,
			X:       d.Bounds.X,
			Y:       d.Bounds.Y,
			Width:   d.Bounds.Width,
			Height:  d.Bounds.Height,
			Primary: d.Primary,
		})
	}
	return nil, out, nil
}

func (in DescribeWindowInput) overrides() config.RawConfig {
	return config.RawConfig{Window: &config.RawWindowConfig{
		Title:      in.Title,
		Width:      in.Width,
		Height:     in.Height,
		Fullscreen: in.Fullscreen,
		VSync:      in.VSync,
		Samples:    in.Samples,
		ExitOnEsc:  in.ExitOnEsc,
		SRGB:       in.SRGB,
		Resizable:  in.Resizable,
		Decorated:  in.Decorated,
	}}
}
