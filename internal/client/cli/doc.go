// Package cli implements the remember-me command-line client:
//
//	client [flags] issue <user-id>
//	client [flags] verify
//	client [flags] revoke
//
// The secret received from issue is stored in the state directory and sent
// with later commands, the way a browser keeps a cookie. issue needs the
// issuer key (-k) the server was started with.
package cli
