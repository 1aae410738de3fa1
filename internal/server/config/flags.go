package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/rememberme/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-m string   store backend: postgres, sqlite, memory, redis, s3
//	-d string   PostgreSQL DSN
//	-s string   SQLite path
//	-r string   Redis URL
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-n string   cookie name
//	-l int      secret length
//	-t string   table name
//	-x string   hash algorithm
//	-y string   fixed expiry instant, RFC 3339
//	-cookie-path, -cookie-domain string
//	-cookie-secure, -cookie-httponly bool (use the -flag=value form)
//	-k string   issuer key
//	-log-level string
//
// Only the flags listed here are parsed; flagx.FilterArgs drops the rest.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-w", "-m", "-d", "-s", "-r", "-u", "-p", "-b", "-g", "-e",
		"-n", "-l", "-t", "-x", "-y", "-k",
		"-cookie-path", "-cookie-domain", "-cookie-secure", "-cookie-httponly", "-log-level",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.StoreBackend, "m", config.StoreBackend, "store backend (postgres, sqlite, memory, redis, s3)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "s", config.SQLitePath, "SQLite database path")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.CookieName, "n", config.CookieName, "remember-me cookie name")
	fs.IntVar(&config.SecretLength, "l", config.SecretLength, "secret length")
	fs.StringVar(&config.Table, "t", config.Table, "credential table")
	fs.StringVar(&config.HashAlgorithm, "x", config.HashAlgorithm, "hash algorithm")
	fs.StringVar(&config.ExpiresAt, "y", config.ExpiresAt, "fixed expiry instant (RFC 3339)")
	fs.StringVar(&config.CookiePath, "cookie-path", config.CookiePath, "cookie path")
	fs.StringVar(&config.CookieDomain, "cookie-domain", config.CookieDomain, "cookie domain")
	fs.BoolVar(&config.CookieSecure, "cookie-secure", config.CookieSecure, "set the Secure cookie attribute")
	fs.BoolVar(&config.CookieHTTPOnly, "cookie-httponly", config.CookieHTTPOnly, "set the HttpOnly cookie attribute")
	fs.StringVar(&config.IssuerKey, "k", config.IssuerKey, "issuer key required to issue tokens")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
