// Package server runs the stargate HTTP API.
//
// It owns the listener lifecycle: startup, OpenTelemetry instrumentation of
// inbound requests, signal handling and graceful shutdown.
package server
