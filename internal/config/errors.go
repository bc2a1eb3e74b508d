package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unusable repository description
	// (for example, missing owner or token).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing image secret).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidVaultConfigs indicates negative limits or worker counts.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	ErrInvalidTelemetryConfigs = errors.New("invalid telemetry configuration")
)
