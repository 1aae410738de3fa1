package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rememberme/internal/flagx"
	"github.com/dmitrijs2005/rememberme/internal/timex"
)

// JsonConfig is the JSON file shape. RequestTimeout accepts "5s" or
// integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	CookieName         string         `json:"cookie_name"`
	StateDir           string         `json:"state_dir"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	IssuerKey          string         `json:"issuer_key"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named by
// -c or -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.CookieName != "" {
		cfg.CookieName = jc.CookieName
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.IssuerKey != "" {
		cfg.IssuerKey = jc.IssuerKey
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
