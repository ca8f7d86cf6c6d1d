package server

import (
	"strconv"
	"strings"
	"time"
)

// DefaultPort is used when the configured port is absent or invalid.
const DefaultPort = 4000

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen. Read from PORT or SERVER_PORT.
	Port string `mapstructure:"port" default:"4000"`
	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `mapstructure:"metrics" default:"false"`
	// Docs exposes the OpenAPI UI on /swagger/*.
	Docs bool `mapstructure:"docs" default:"false"`
	// BodyLimitMB caps request bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
	// ReadTimeoutSeconds bounds reading a full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// WriteTimeoutSeconds bounds writing a response.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"30"`
	// IdleTimeoutSeconds bounds keep-alive idle time.
	IdleTimeoutSeconds int `mapstructure:"idle_timeout_seconds" default:"120"`
}

// ListenPort returns the configured port, falling back to DefaultPort when the value
// is missing, not a number, or outside the TCP port range.
func (c Config) ListenPort() int {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p <= 0 || p > 65535 {
		return DefaultPort
	}
	return p
}

// Addr returns the listen address for the configured port on all interfaces.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ListenPort())
}

func (c Config) bodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
