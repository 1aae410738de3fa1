package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rememberme/internal/flagx"
	"github.com/dmitrijs2005/rememberme/internal/timex"
)

// JsonConfig is the shape of the JSON configuration file. Absent fields keep
// the value already in Config; pointers distinguish an explicit false or zero
// from a missing field.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	StoreBackend     string         `json:"store_backend"`
	DatabaseDSN      string         `json:"database_dsn"`
	SQLitePath       string         `json:"sqlite_path"`
	RedisURL         string         `json:"redis_url"`
	RedisPrefix      string         `json:"redis_prefix"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3Prefix         string         `json:"s3_prefix"`
	CookieName       string         `json:"cookie_name"`
	SecretLength     *int           `json:"secret_length"`
	Table            string         `json:"table"`
	HashAlgorithm    string         `json:"hash_algorithm"`
	ExpiresAt        string         `json:"expires_at"`
	CookiePath       string         `json:"cookie_path"`
	CookieDomain     string         `json:"cookie_domain"`
	CookieSecure     *bool          `json:"cookie_secure"`
	CookieHTTPOnly   *bool          `json:"cookie_httponly"`
	IssuerKey        string         `json:"issuer_key"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing is loaded. An unreadable
// file or invalid JSON panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.RedisPrefix, c.RedisPrefix)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.CookieName, c.CookieName)
	setString(&config.Table, c.Table)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setString(&config.ExpiresAt, c.ExpiresAt)
	setString(&config.CookiePath, c.CookiePath)
	setString(&config.CookieDomain, c.CookieDomain)
	setString(&config.IssuerKey, c.IssuerKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.SecretLength != nil {
		config.SecretLength = *c.SecretLength
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.CookieHTTPOnly != nil {
		config.CookieHTTPOnly = *c.CookieHTTPOnly
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
