// Package config provides configuration loading, merging, and validation
// facilities for stargate.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Remaining zero fields are filled from [Defaults]. The main entry point is
// [GetStructuredConfig]; flags are registered with [RegisterFlags].
package config
