package mcpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"youtrack_mcp/internal/config"
	"youtrack_mcp/internal/logger"
	"youtrack_mcp/internal/youtrack"
)

// Version is reported by the server info and health resources.
const Version = "0.2.0"

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, client *youtrack.Client) (*server.MCPServer, error) {
	// Create MCP server
	s := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	// Add YouTrack tools
	tools, err := registerYouTrackTools(s, client)
	if err != nil {
		return nil, err
	}

	// Descriptive resources, including the tool listing derived from the
	// set registered above
	registerResources(s, cfg, tools)

	return s, nil
}

// Serve starts the MCP server on stdio
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// ServeHTTP starts the MCP server over SSE on cfg.Addr(), with /healthz
// and /info endpoints alongside for container monitoring.
func ServeHTTP(s *server.MCPServer, cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	sse := server.NewSSEServer(s)

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinLogMiddleware())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthPayload())
	})
	router.GET("/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, serverInfoPayload(cfg))
	})
	// Everything else (the SSE and message endpoints) goes to MCP
	router.NoRoute(gin.WrapH(sse))

	logger.GetLogger().Info("serving MCP over http", zap.String("addr", cfg.Addr()))
	return router.Run(cfg.Addr())
}
