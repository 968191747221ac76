package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"youtrack_mcp/internal/config"
	"youtrack_mcp/internal/logger"
	mcpserver "youtrack_mcp/internal/service/mcp-server"
	"youtrack_mcp/internal/youtrack"
)

var (
	flagYouTrackURL   string
	flagYouTrackToken string
	flagReadOnly      bool
	flagTransport     string
)

var rootCmd = &cobra.Command{
	Use:          "youtrack-mcp",
	Short:        "YouTrack MCP Server",
	Long:         "MCP server exposing YouTrack issue search, retrieval, updates and comments as tools.",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagYouTrackURL, "youtrack-url", "", "YouTrack URL (e.g., https://yourdomain.youtrack.cloud)")
	rootCmd.Flags().StringVar(&flagYouTrackToken, "youtrack-token", "", "YouTrack API permanent token")
	rootCmd.Flags().BoolVar(&flagReadOnly, "read-only", false, "Run in read-only mode (disables all write operations)")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "", "MCP transport: stdio or http (default stdio)")
}

func run(cmd *cobra.Command, args []string) error {
	// Flags override the environment, same as the environment drives
	// everything else
	if flagYouTrackURL != "" {
		os.Setenv("YOUTRACK_URL", flagYouTrackURL)
	}
	if flagYouTrackToken != "" {
		os.Setenv("YOUTRACK_TOKEN", flagYouTrackToken)
	}
	if flagReadOnly {
		os.Setenv("YOUTRACK_READ_ONLY", "true")
	}
	if flagTransport != "" {
		os.Setenv("MCP_TRANSPORT", flagTransport)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("starting YouTrack MCP Server",
		zap.String("youtrack_url", cfg.YouTrackURL),
		zap.Bool("read_only", cfg.ReadOnly),
		zap.String("transport", string(cfg.Transport)),
	)

	client := youtrack.New(youtrack.Settings{
		BaseURL:  cfg.YouTrackURL,
		Token:    cfg.YouTrackToken,
		ReadOnly: cfg.ReadOnly,
	})

	s, err := mcpserver.NewServer(cfg, client)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	defer log.Info("shutting down YouTrack MCP Server")

	switch cfg.Transport {
	case config.TransportHTTP:
		return mcpserver.ServeHTTP(s, cfg)
	default:
		return mcpserver.Serve(s)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
