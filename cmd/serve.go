package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/outlook/bridge"
	"github.com/mailscope/mailscope/internal/prompts"
	"github.com/mailscope/mailscope/internal/server"
	"github.com/mailscope/mailscope/internal/tools/outlook_tools"
)

// BridgeConfig holds the connection settings for the Outlook bridge sidecar.
type BridgeConfig struct {
	URL   string
	Token string
}

// MetricsConfig holds metrics server configuration from flags/env.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode     bool
		transport     string
		httpAddr      string
		bridgeConfig  BridgeConfig
		metricsConfig MetricsConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server to provide Outlook tools for AI assistants",
		Long: `Start a Model Context Protocol (MCP) server that exposes a local
Microsoft Outlook profile to AI assistants.

The server talks to the Outlook bridge sidecar over HTTP and provides
tools for:
  - Listing mail stores and folders
  - Searching emails with sender, recipient, date and read-state filters
  - Searching the calendar, including recurring meeting occurrences
  - Reading individual emails and appointments by short reference token

Transport options:
  - stdio: Standard input/output (default, for Claude Desktop and similar)
  - streamable-http: HTTP with streaming support

The bridge sidecar must be running on the same machine as Outlook. By
default the server connects to ` + bridge.DefaultBaseURL + `.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, transport, debugMode, httpAddr, bridgeConfig, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&bridgeConfig.URL, "bridge-url", "", "Base URL of the Outlook bridge sidecar. Can also use MAILSCOPE_BRIDGE_URL env var. Defaults to "+bridge.DefaultBaseURL)
	cmd.Flags().StringVar(&bridgeConfig.Token, "bridge-token", "", "Bearer token for the Outlook bridge. Can also use MAILSCOPE_BRIDGE_TOKEN env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsConfig.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsConfig.Addr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(cmd *cobra.Command, transport string, debugMode bool, httpAddr string, bridgeConfig BridgeConfig, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loadServeEnvVars(cmd, &bridgeConfig, &metricsConfig)

	if debugMode {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Connect to the Outlook bridge sidecar
	var bridgeOpts []bridge.Option
	if bridgeConfig.Token != "" {
		bridgeOpts = append(bridgeOpts, bridge.WithToken(bridgeConfig.Token))
	}
	if provider.Enabled() {
		bridgeOpts = append(bridgeOpts, bridge.WithMetrics(provider.Metrics()))
	}
	store, err := bridge.NewClient(bridgeConfig.URL, bridgeOpts...)
	if err != nil {
		return fmt.Errorf("failed to create bridge client: %w", err)
	}

	serverContext := server.NewServerContext(shutdownCtx, store)

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
		serverContext.Refs().SetMetrics(instrumentation.NewRefCacheRecorder(provider.Metrics()))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mailscope", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithInstructions("Search and read Outlook emails and calendar events. "+
			"Use outlook_list_folders to discover available mail stores/folders. "+
			"Use outlook_search_emails/outlook_search_calendar to find emails and calendar events. "+
			"Use outlook_read_item with an id from search results to get full content (both emails and calendar events). "+
			"Recent emails are in the primary mailbox; older emails may be in other stores (such as 'Online Archive')."),
	)

	if err := outlook_tools.RegisterOutlookTools(mcpSrv, serverContext); err != nil {
		return err
	}
	if err := prompts.RegisterPrompts(mcpSrv); err != nil {
		return fmt.Errorf("failed to register prompts: %w", err)
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting mailscope MCP server with %s transport...\n", transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, metricsConfig, metricsServer)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, metricsConfig MetricsConfig, metricsServer *server.MetricsServer) error {
	streamableServer := mcpserver.NewStreamableHTTPServer(mcpSrv)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamableServer)

	// Set up health checker for health check endpoints
	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsServer != nil {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	healthChecker.SetReady(true)

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

// loadServeEnvVars loads serve configuration from environment variables.
// Environment variables only override flag values when the flag was not
// explicitly set by the user.
func loadServeEnvVars(cmd *cobra.Command, bridgeConfig *BridgeConfig, metricsConfig *MetricsConfig) {
	if !cmd.Flags().Changed("bridge-url") {
		if url := os.Getenv("MAILSCOPE_BRIDGE_URL"); url != "" {
			bridgeConfig.URL = url
		}
	}
	if !cmd.Flags().Changed("bridge-token") {
		if token := os.Getenv("MAILSCOPE_BRIDGE_TOKEN"); token != "" {
			bridgeConfig.Token = token
		}
	}
	if !cmd.Flags().Changed("metrics-enabled") {
		if enabled := os.Getenv("METRICS_ENABLED"); enabled != "" {
			metricsConfig.Enabled = enabled == "true"
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}
}
