package config

import (
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC endpoint.
//   - CookieName: metadata key carrying the secret; must match the server.
//   - StateDir: directory, relative to the working directory, where the
//     secret is kept between runs.
//   - RequestTimeout: deadline for each call.
//   - IssuerKey: shared key authorizing issue; only trusted operators have it.
type Config struct {
	ServerEndpointAddr string
	CookieName         string
	StateDir           string
	RequestTimeout     time.Duration
	IssuerKey          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CookieName = common.DefaultCookieName
	c.StateDir = ".rememberme"
	c.RequestTimeout = common.RequestTimeout
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
