// Package client talks to the remember-me gRPC service. GRPCClient keeps the
// current secret in memory, attaches it to outgoing calls and picks up the
// value the server sets or clears in response headers.
package client
