// Package http implements the REST transport of the stargate image vault.
//
// It exposes route wiring, request handlers and middleware used by the API a
// browser front end calls instead of running the vault itself. Bearer token
// authentication, request tracing, access logging and response compression
// are handled here before requests are delegated to the service layer.
// Error responses are JSON objects whose "message" field is the wording from
// package app.
package http
