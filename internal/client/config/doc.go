// Package config loads runtime configuration for the authgate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string        base URL of the authgate server
//	-timeout int     request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "5s"
//	}
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values. The server configuration is separate and
// lives in internal/server/config.
package config
