package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the server
//	-n string   cookie (metadata) name
//	-s string   state directory
//	-t int      request timeout in seconds
//	-k string   issuer key
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-n", "-s", "-t", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.CookieName, "n", cfg.CookieName, "remember-me cookie name")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "state directory")
	fs.StringVar(&cfg.IssuerKey, "k", cfg.IssuerKey, "issuer key")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
