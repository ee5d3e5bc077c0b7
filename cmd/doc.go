// Package cmd implements the command-line interface of dConf. It provides a
// hierarchical command structure for running a configuration server and for
// reading and writing configuration values as a client.
//
// The package is organized into several subpackages:
//
//   - cfg: Commands for configuration operations (get, set, del, has)
//   - serve: Commands for starting and configuring the dConf server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dconf -help for a list of all commands.
package cmd
