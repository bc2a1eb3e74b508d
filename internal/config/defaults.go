// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	BackendGitHub = "github"
	BackendMemory = "memory"

	DefaultEnvFile = ".env"

	MiB = 1 << 20
)

// Defaults returns the values used for every field left zero by the other
// sources.
func Defaults() StructuredConfig {
	return StructuredConfig{
		App: App{
			ScopeNamespace: "stargate-images",
			KDF:            "pbkdf2",
			TokenIssuer:    "stargate",
			Version:        "dev",
		},
		Storage: Storage{
			Repo: Repo{
				Backend: BackendGitHub,
				APIURL:  "https://api.github.com",
				Branch:  "main",
			},
			DB: DB{
				DSN: "stargate.db",
			},
		},
		Vault: Vault{
			ImageRoot:   "data/images",
			MaxFileSize: 10 * MiB,
			ScopeQuota:  100 * MiB,
			Workers:     4,
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 15 * time.Second,
		},
		Telemetry: Telemetry{
			Endpoint:    "localhost:4317",
			ServiceName: "stargate",
			SampleRate:  1,
		},
	}
}
