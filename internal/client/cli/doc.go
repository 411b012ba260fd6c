// Package cli provides the interactive authgate command-line client.
//
// It wires configuration, the HTTP API client, and an interactive REPL that
// walks the token lifecycle: register an account, log in, inspect the current
// session, rotate the token pair, and log out.
//
// Key commands:
//   - Register / Login (create an account, obtain a token pair)
//   - Whoami (call the protected endpoint with the access token)
//   - Refresh (force a refresh-token rotation)
//   - Logout (revoke the refresh token server-side)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
