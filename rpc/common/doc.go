// Package common provides the data structures shared by the dConf RPC client and
// server: the wire message, the configuration structs and the logger setup.
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication, with factory
//     methods for every request and response. Values travel as their JSON
//     encoding; store errors travel with their kind so the client can rebuild them.
//
//   - MessageType: Enumeration of the supported operations (get, set, delete,
//     has) plus the control types success and error.
//
//   - ServerConfig / ClientConfig: Configuration of the server (shards, data
//     directory, endpoint) and of the client (endpoints, timeout, retries).
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger package and formats all package loggers consistently.
package common
