package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"youtrack_mcp/internal/config"
)

// ToolInfo is one entry of the mcp://tools/list resource. The listing is
// built from the registered tool set during startup, not maintained by
// hand.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// registerResources registers the descriptive resources: server info,
// health probe, projects pointer, and the tool listing.
func registerResources(s *server.MCPServer, cfg *config.Config, tools []ToolInfo) {
	s.AddResource(mcp.NewResource("server://info", "Server Info",
		mcp.WithResourceDescription("YouTrack MCP Server information"),
		mcp.WithMIMEType("application/json"),
	), jsonResourceHandler(func() any {
		return serverInfoPayload(cfg)
	}))

	s.AddResource(mcp.NewResource("mcp://health", "Health Check",
		mcp.WithResourceDescription("Health check endpoint for container monitoring"),
		mcp.WithMIMEType("application/json"),
	), jsonResourceHandler(func() any {
		return healthPayload()
	}))

	s.AddResource(mcp.NewResource("mcp://tools/list", "Tool Listing",
		mcp.WithResourceDescription("All tools available on this MCP server"),
		mcp.WithMIMEType("application/json"),
	), jsonResourceHandler(func() any {
		return map[string]any{"tools": tools}
	}))

	s.AddResource(mcp.NewResource("youtrack://projects", "YouTrack Projects",
		mcp.WithResourceDescription("Pointer to YouTrack project access"),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     "This resource provides access to YouTrack projects. Use the youtrack_search_issues tool to query projects.",
			},
		}, nil
	})
}

func serverInfoPayload(cfg *config.Config) map[string]any {
	return map[string]any{
		"status":       "ok",
		"version":      Version,
		"server":       cfg.ServerName,
		"youtrack_url": cfg.YouTrackURL,
		"host_binding": cfg.Host,
		"port":         cfg.Port,
		"read_only":    cfg.ReadOnly,
		"debug_mode":   strings.EqualFold(cfg.LogLevel, "debug"),
	}
}

func healthPayload() map[string]any {
	return map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	}
}

// jsonResourceHandler adapts a payload func into an MCP resource handler
// returning JSON text contents.
func jsonResourceHandler(payload func() any) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		encoded, err := json.Marshal(payload())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(encoded),
			},
		}, nil
	}
}
