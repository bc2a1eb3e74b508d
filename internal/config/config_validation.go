// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] is usable before
// any component is constructed.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.ImageSecret == "" {
		return fmt.Errorf("%w: image secret is required", ErrInvalidAppConfigs)
	}

	switch strings.ToLower(cfg.App.KDF) {
	case "", "pbkdf2", "argon2id":
	default:
		return fmt.Errorf("%w: unknown kdf %q", ErrInvalidAppConfigs, cfg.App.KDF)
	}

	switch cfg.Storage.Repo.Backend {
	case "", BackendMemory:
	case BackendGitHub:
		repo := cfg.Storage.Repo
		if repo.Owner == "" || repo.Name == "" {
			return fmt.Errorf("%w: repository owner and name are required", ErrInvalidStorageConfigs)
		}
		if repo.Token == "" && repo.EncryptedToken == "" {
			return fmt.Errorf("%w: an access token or an encrypted token is required", ErrInvalidStorageConfigs)
		}
		if repo.EncryptedToken != "" && repo.TokenPIN == "" {
			return fmt.Errorf("%w: encrypted token needs a PIN", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Repo.Backend)
	}

	if cfg.Vault.MaxFileSize < 0 || cfg.Vault.ScopeQuota < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidVaultConfigs)
	}
	if cfg.Vault.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidVaultConfigs)
	}

	if cfg.Telemetry.SampleRate < 0 || cfg.Telemetry.SampleRate > 1 {
		return fmt.Errorf("%w: sample rate must be within [0, 1]", ErrInvalidTelemetryConfigs)
	}

	return nil
}
