package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unprompted/unprompted/internal/supervisor"
	"github.com/unprompted/unprompted/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the worker on/off controls",
	Long: `Start a Model Context Protocol (MCP) server that exposes the clicker
controls as tools, so agents can toggle the worker without shelling out.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  unprompted mcp --config unprompted.yaml
  unprompted mcp --config unprompted.yaml --transport streamable-http --port 8080`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("config", "unprompted.yaml", "Path to the worker YAML configuration file")
	mcpCmd.Flags().String("worker-path", "", "Worker executable (default: this binary)")
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport  string
	Port       int
	ConfigPath string
	WorkerPath string
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	configPath, _ := cmd.Flags().GetString("config")
	workerPath, _ := cmd.Flags().GetString("worker-path")

	cfg := MCPConfig{
		Transport:  transport,
		Port:       port,
		ConfigPath: configPath,
		WorkerPath: workerPath,
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.sup.Quit()

	return srv.serve(cfg)
}

// mcpServer wraps the MCP server around the supervisor.
type mcpServer struct {
	sup *supervisor.Supervisor
	mcp *mcpserver.MCPServer
}

func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	sup, err := supervisor.New(supervisor.Options{
		WorkerPath: cfg.WorkerPath,
		ConfigPath: cfg.ConfigPath,
	})
	if err != nil {
		return nil, err
	}

	s := &mcpServer{sup: sup}
	s.mcp = mcpserver.NewMCPServer(
		"unprompted",
		version.Version,
	)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report the clicker state: IDLE, ACTIVE or ERROR, plus worker PID and last exit code"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("turn_on",
			mcp.WithDescription("Start the click worker. Refused if it is already running."),
		),
		s.handleTurnOn,
	)

	s.mcp.AddTool(
		mcp.NewTool("turn_off",
			mcp.WithDescription("Stop the click worker. A no-op if nothing is running."),
		),
		s.handleTurnOff,
	)

	s.mcp.AddTool(
		mcp.NewTool("trigger",
			mcp.WithDescription("Toggle the click worker: start it when idle, stop it when running"),
		),
		s.handleTrigger,
	)
}

// statusToText serializes a supervisor status to YAML for MCP responses.
func statusToText(st supervisor.Status) string {
	b, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Sprintf("state: %s", st.State)
	}
	return string(b)
}

func (s *mcpServer) handleStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(statusToText(s.sup.Status())), nil
}

func (s *mcpServer) handleTurnOn(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.sup.Start(); err != nil {
		return mcp.NewToolResultError(statusToText(s.sup.Status())), nil
	}
	return mcp.NewToolResultText(statusToText(s.sup.Status())), nil
}

func (s *mcpServer) handleTurnOff(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.sup.Stop(); err != nil {
		return mcp.NewToolResultError(statusToText(s.sup.Status())), nil
	}
	return mcp.NewToolResultText(statusToText(s.sup.Status())), nil
}

func (s *mcpServer) handleTrigger(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var err error
	if s.sup.Running() {
		err = s.sup.Stop()
	} else {
		err = s.sup.Start()
	}
	if err != nil {
		return mcp.NewToolResultError(statusToText(s.sup.Status())), nil
	}
	return mcp.NewToolResultText(statusToText(s.sup.Status())), nil
}
