package config

import (
	"fmt"
	"os"
	"strings"
)

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	// TransportStdio serves MCP over stdin/stdout.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves MCP over SSE on Host:Port.
	TransportHTTP Transport = "http"
)

// Config holds all configuration for the application
type Config struct {
	// YouTrack configuration
	YouTrackURL   string // Required: base URL of the YouTrack instance, e.g. https://yourcompany.youtrack.cloud
	YouTrackToken string // Required: YouTrack permanent token (sent as a bearer token)
	ReadOnly      bool   // Disables the mutating tools (update_issue, add_comment)

	// MCP server configuration
	ServerName string    // Display name announced to MCP clients
	Host       string    // Bind address for the http transport
	Port       string    // Bind port for the http transport
	Transport  Transport // stdio or http

	// Log level
	LogLevel string
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"YOUTRACK_URL":   &cfg.YouTrackURL,
		"YOUTRACK_TOKEN": &cfg.YouTrackToken,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	// A trailing slash on the base URL would double up in {base}/api/{endpoint}
	cfg.YouTrackURL = strings.TrimRight(cfg.YouTrackURL, "/")

	cfg.ReadOnly = parseBool(os.Getenv("YOUTRACK_READ_ONLY"))
	cfg.ServerName = getEnvDefault("MCP_SERVER_NAME", "YouTrack MCP Server")
	cfg.Host = getEnvDefault("MCP_HOST", "0.0.0.0")
	cfg.Port = getEnvDefault("MCP_PORT", "8000")
	cfg.LogLevel = getEnvDefault("MCP_LOG_LEVEL", "info")

	transport := Transport(strings.ToLower(getEnvDefault("MCP_TRANSPORT", string(TransportStdio))))
	switch transport {
	case TransportStdio, TransportHTTP:
		cfg.Transport = transport
	default:
		return nil, fmt.Errorf("invalid MCP_TRANSPORT %q: must be %q or %q", transport, TransportStdio, TransportHTTP)
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}

// Addr returns the listen address for the http transport.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvDefault(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
