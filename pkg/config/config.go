// Package config provides centralized configuration management for the Figma bridge server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Transport modes understood by the server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// PortUnused is the sentinel port value used when the stdio transport is
// active and no network listener will ever be opened.
const PortUnused = 0

// DefaultPort is used by network transports when PORT is not set.
const DefaultPort = 3000

// Config holds the complete configuration for the application.
type Config struct {
	// Figma API configuration
	Figma struct {
		APIKey  string
		APIBase string
	}

	// Secure transport client configuration. The handshake itself is
	// delegated to the external client; only its credential is carried here.
	SecureTransport struct {
		Key string
	}

	// Server / transport configuration
	Server struct {
		Transport string
		Host      string
		Port      int
	}

	// Environment label, consumed only for logging metadata
	Environment string
}

// Load reads the configuration from environment variables, with an optional
// .env override file read once from the working directory.
func Load() *Config {
	v := viper.New()

	// Optional local override file; absence is not an error.
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	v.SetDefault("TRANSPORT", TransportStdio)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("HOST", "localhost")
	v.SetDefault("ENVIRONMENT", "development")

	config := &Config{}

	config.Figma.APIKey = v.GetString("FIGMA_API_KEY")
	config.Figma.APIBase = v.GetString("FIGMA_API_BASE")

	config.SecureTransport.Key = v.GetString("SECURE_TRANSPORT_KEY")

	config.Server.Transport = strings.ToLower(v.GetString("TRANSPORT"))
	config.Server.Host = v.GetString("HOST")
	config.Server.Port = v.GetInt("PORT")

	config.Environment = v.GetString("ENVIRONMENT")

	// The stdio transport never opens a listener.
	if config.Server.Transport == TransportStdio {
		config.Server.Port = PortUnused
	}

	return config
}

// Validate checks if all required configuration values are set.
// A validation error is fatal at startup.
func (c *Config) Validate() error {
	var errors []string

	if c.Figma.APIKey == "" {
		errors = append(errors, "FIGMA_API_KEY is required")
	}

	if c.SecureTransport.Key == "" {
		errors = append(errors, "SECURE_TRANSPORT_KEY is required")
	}

	if c.Server.Transport != TransportStdio && c.Server.Transport != TransportSSE {
		errors = append(errors, fmt.Sprintf("unknown transport %q", c.Server.Transport))
	}

	if c.Server.Transport != TransportStdio && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errors = append(errors, fmt.Sprintf("invalid port %d", c.Server.Port))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
