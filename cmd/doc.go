// Package cmd implements the command-line interface for kvr, a
// single-threaded, event-driven key-value server. It provides a
// hierarchical command structure for running the server and talking to
// it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: starts and configures the reactor server
//   - kv: a TCP client speaking the wire protocol directly, plus a
//     testing.Benchmark-based load-testing tool
//   - util: shared utilities for command-line processing and configuration (internal use)
//
// See kvr -help for a list of all commands.
package cmd
