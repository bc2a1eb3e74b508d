package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags adds the configuration flags to fs.
//
// Flags:
//
//	-a/--address       server address in format [host]:[port]
//	-c/--config        json file path with configs
//	-d/--database-uri  ledger DSN (sqlite path or postgres URL)
//	--image-secret     application secret for scope keys
//	--scope-namespace  scope salt namespace
//	--kdf              key derivation function (pbkdf2, argon2id)
//	--backend          content backend (github, memory)
//	--repo-owner       repository owner
//	--repo-name        repository name
//	--repo-branch      repository branch
//	--token-sign-key   bearer token signing key
//	--request-timeout  outbound request timeout (e.g., "15s")
func RegisterFlags(fs *pflag.FlagSet) {
	fs.VarP(&NetAddress{}, "address", "a", "Net address host:port")
	fs.StringP("config", "c", "", "JSON config file path")
	fs.StringP("database-uri", "d", "", "Ledger database DSN")
	fs.String("image-secret", "", "Application secret for image scope keys")
	fs.String("scope-namespace", "", "Scope salt namespace")
	fs.String("kdf", "", "Key derivation function (pbkdf2, argon2id)")
	fs.String("backend", "", "Content backend (github, memory)")
	fs.String("repo-owner", "", "Repository owner")
	fs.String("repo-name", "", "Repository name")
	fs.String("repo-branch", "", "Repository branch")
	fs.String("token-sign-key", "", "Bearer token signing key")
	fs.Duration("request-timeout", 0, "Outbound request timeout (e.g., 15s)")
}

// configFromFlags reads the flags registered by [RegisterFlags]. Flags that
// were not registered on fs are left zero.
func configFromFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var errs []error
	str := func(name string) string {
		if fs.Lookup(name) == nil {
			return ""
		}
		v, err := fs.GetString(name)
		errs = append(errs, err)
		return v
	}

	cfg := &StructuredConfig{
		App: App{
			ImageSecret:    str("image-secret"),
			ScopeNamespace: str("scope-namespace"),
			KDF:            str("kdf"),
			TokenSignKey:   str("token-sign-key"),
		},
		Storage: Storage{
			Repo: Repo{
				Backend: str("backend"),
				Owner:   str("repo-owner"),
				Name:    str("repo-name"),
				Branch:  str("repo-branch"),
			},
			DB: DB{DSN: str("database-uri")},
		},
		JSONFilePath: str("config"),
	}

	if f := fs.Lookup("address"); f != nil {
		cfg.Server.HTTPAddress = f.Value.String()
	}
	if fs.Lookup("request-timeout") != nil {
		d, err := fs.GetDuration("request-timeout")
		errs = append(errs, err)
		cfg.Adapter.RequestTimeout = d
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
