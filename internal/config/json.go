package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout. Durations accept either
// strings ("15s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		ImageSecret    string `json:"image_secret"`
		ScopeNamespace string `json:"scope_namespace"`
		KDF            string `json:"kdf"`
		TokenSignKey   string `json:"token_sign_key"`
		TokenIssuer    string `json:"token_issuer"`
		Version        string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Repo struct {
			Backend        string `json:"backend"`
			APIURL         string `json:"api_url"`
			Owner          string `json:"owner"`
			Name           string `json:"name"`
			Branch         string `json:"branch"`
			Token          string `json:"token"`
			EncryptedToken string `json:"encrypted_token"`
			TokenPIN       string `json:"token_pin"`
		} `json:"repo,omitempty"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Vault struct {
		ImageRoot   string `json:"image_root"`
		MaxFileSize int64  `json:"max_file_size"`
		ScopeQuota  int64  `json:"scope_quota"`
		Workers     int    `json:"workers"`
	} `json:"vault,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Telemetry struct {
		Enabled     bool    `json:"enabled"`
		Endpoint    string  `json:"endpoint"`
		ServiceName string  `json:"service_name"`
		SampleRate  float64 `json:"sample_rate"`
		Insecure    bool    `json:"insecure"`
	} `json:"telemetry,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ImageSecret:    jsonCfg.App.ImageSecret,
			ScopeNamespace: jsonCfg.App.ScopeNamespace,
			KDF:            jsonCfg.App.KDF,
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			Repo: Repo{
				Backend:        jsonCfg.Storage.Repo.Backend,
				APIURL:         jsonCfg.Storage.Repo.APIURL,
				Owner:          jsonCfg.Storage.Repo.Owner,
				Name:           jsonCfg.Storage.Repo.Name,
				Branch:         jsonCfg.Storage.Repo.Branch,
				Token:          jsonCfg.Storage.Repo.Token,
				EncryptedToken: jsonCfg.Storage.Repo.EncryptedToken,
				TokenPIN:       jsonCfg.Storage.Repo.TokenPIN,
			},
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Vault: Vault{
			ImageRoot:   jsonCfg.Vault.ImageRoot,
			MaxFileSize: jsonCfg.Vault.MaxFileSize,
			ScopeQuota:  jsonCfg.Vault.ScopeQuota,
			Workers:     jsonCfg.Vault.Workers,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Telemetry: Telemetry{
			Enabled:     jsonCfg.Telemetry.Enabled,
			Endpoint:    jsonCfg.Telemetry.Endpoint,
			ServiceName: jsonCfg.Telemetry.ServiceName,
			SampleRate:  jsonCfg.Telemetry.SampleRate,
			Insecure:    jsonCfg.Telemetry.Insecure,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
