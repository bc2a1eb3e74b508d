// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for stargate.
// It is populated by merging a .env file, environment variables, command-line
// flags and an optional JSON file, then filled with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds secrets and identity settings shared by every surface.
	App App `envPrefix:"APP_"`

	// Storage holds the remote repository and the local ledger settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Vault holds image vault limits and layout.
	Vault Vault `envPrefix:"VAULT_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound HTTP client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Telemetry holds OpenTelemetry exporter settings.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ImageSecret is the application secret every scope key is derived from.
	// Env: APP_IMAGE_SECRET
	ImageSecret string `env:"IMAGE_SECRET"`

	// ScopeNamespace prefixes scope salts ("<namespace>-<scopeID>").
	// Changing it makes every stored image unreadable.
	// Env: APP_SCOPE_NAMESPACE
	ScopeNamespace string `env:"SCOPE_NAMESPACE"`

	// KDF selects the key derivation function: "pbkdf2" or "argon2id".
	// Env: APP_KDF
	KDF string `env:"KDF"`

	// TokenSignKey is the HS256 secret used to verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the remote repository and local ledger settings.
type Storage struct {
	Repo Repo `envPrefix:"REPO_"`
	DB   DB   `envPrefix:"DB_"`
}

// Repo describes the GitHub repository images are committed to.
type Repo struct {
	// Backend selects the content backend: "github" or "memory".
	// Env: STORAGE_REPO_BACKEND
	Backend string `env:"BACKEND"`

	// APIURL is the GitHub REST API root.
	// Env: STORAGE_REPO_API_URL
	APIURL string `env:"API_URL"`

	// Env: STORAGE_REPO_OWNER
	Owner string `env:"OWNER"`

	// Env: STORAGE_REPO_NAME
	Name string `env:"NAME"`

	// Env: STORAGE_REPO_BRANCH
	Branch string `env:"BRANCH"`

	// Token is a plaintext access token. Mutually exclusive with
	// EncryptedToken.
	// Env: STORAGE_REPO_TOKEN
	Token string `env:"TOKEN"`

	// EncryptedToken is a token sealed with `vaultctl seal-token`, opened at
	// startup with TokenPIN.
	// Env: STORAGE_REPO_ENCRYPTED_TOKEN
	EncryptedToken string `env:"ENCRYPTED_TOKEN"`

	// Env: STORAGE_REPO_TOKEN_PIN
	TokenPIN string `env:"TOKEN_PIN"`
}

// DB holds connection settings for the vault entry ledger.
type DB struct {
	// DSN is either a SQLite file path / URI or a postgres:// URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Vault holds image vault limits and layout.
type Vault struct {
	// ImageRoot is the repository directory objects are stored under.
	// Env: VAULT_IMAGE_ROOT
	ImageRoot string `env:"IMAGE_ROOT"`

	// MaxFileSize is the per-file plaintext limit in bytes.
	// Env: VAULT_MAX_FILE_SIZE
	MaxFileSize int64 `env:"MAX_FILE_SIZE"`

	// ScopeQuota is the per-scope plaintext limit in bytes.
	// Env: VAULT_SCOPE_QUOTA
	ScopeQuota int64 `env:"SCOPE_QUOTA"`

	// Workers bounds concurrent vault calls of batch operations.
	// Env: VAULT_WORKERS
	Workers int `env:"WORKERS"`
}

// Server holds network and timeout settings for the inbound HTTP API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds outbound HTTP client settings.
type Adapter struct {
	// RequestTimeout bounds a single GitHub API call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Telemetry configures the OTLP trace exporter.
type Telemetry struct {
	// Env: TELEMETRY_ENABLED
	Enabled bool `env:"ENABLED"`

	// Env: TELEMETRY_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Env: TELEMETRY_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`

	// SampleRate is the parent-based trace id ratio in 0..1.
	// Env: TELEMETRY_SAMPLE_RATE
	SampleRate float64 `env:"SAMPLE_RATE"`

	// Insecure disables TLS towards the collector.
	// Env: TELEMETRY_INSECURE
	Insecure bool `env:"INSECURE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (later sources
// override earlier non-zero fields):
//  1. .env file in the working directory
//  2. Environment variables
//  3. Command-line flags registered on fs (may be nil)
//  4. JSON file (path resolved from sources 2 and 3)
//
// Zero fields are then filled from [Defaults].
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(DefaultEnvFile).
		withEnv().
		withFlags(fs).
		withJSON().
		withDefaults().
		build()
}
