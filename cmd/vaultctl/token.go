package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/wavrons/stargate/internal/app"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/service"
)

var errEmptyPIN = errors.New("pin is required")

// tokenServiceFromFlags builds a token service whose KDF follows --kdf, so a
// sealed envelope opens under the same settings the server will use.
func (c *cli) tokenServiceFromFlags(cmd *cobra.Command) (service.TokenService, error) {
	kdf, _ := cmd.Flags().GetString("kdf")
	provider, err := app.NewProvider(config.App{KDF: kdf})
	if err != nil {
		return nil, err
	}
	return service.NewTokenService(provider, c.log), nil
}

func (c *cli) sealTokenCmd() *cobra.Command {
	var (
		pin         string
		token       string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:         "seal-token",
		Short:       "Encrypt a repository access token under a PIN",
		Long:        "Encrypt a repository access token under a PIN. The token is read from --token or the first line of stdin.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pin == "" {
				return errEmptyPIN
			}
			if token == "" {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = line
			}

			tokens, err := c.tokenServiceFromFlags(cmd)
			if err != nil {
				return err
			}

			envelope, err := tokens.Seal(cmd.Context(), pin, token)
			if err != nil {
				return errors.New(app.UserMessage(err))
			}

			if toClipboard {
				if err = clipboard.WriteAll(envelope); err != nil {
					c.log.Warn().Err(err).Msg("clipboard is unavailable, printing envelope instead")
				} else {
					fmt.Fprintln(os.Stderr, "envelope copied to clipboard")
					return nil
				}
			}
			fmt.Fprintln(c.out, envelope)
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN protecting the token")
	cmd.Flags().StringVar(&token, "token", "", "Token to seal (default: read from stdin)")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "Copy the envelope to the clipboard instead of printing it")
	return cmd
}

func (c *cli) openTokenCmd() *cobra.Command {
	var pin, envelope string

	cmd := &cobra.Command{
		Use:         "open-token",
		Short:       "Check that a sealed token opens under a PIN",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pin == "" {
				return errEmptyPIN
			}
			tokens, err := c.tokenServiceFromFlags(cmd)
			if err != nil {
				return err
			}

			token, err := tokens.Open(cmd.Context(), pin, envelope)
			if err != nil {
				return errors.New(app.UserMessage(err))
			}

			fmt.Fprintf(c.out, "ok: token ends with %q\n", tail(token, 4))
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN protecting the token")
	cmd.Flags().StringVar(&envelope, "envelope", "", "Sealed token envelope")
	return cmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var (
		caller string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := service.NewAuthService(c.cfg.App, c.log)
			token, err := auth.CreateToken(cmd.Context(), caller, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token.SignedString)
			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "caller", "vaultctl", "Subject recorded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// tail returns the last n characters of s, or "" when s is too short to
// reveal only a suffix.
func tail(s string, n int) string {
	if len(s) <= n*2 {
		return ""
	}
	return s[len(s)-n:]
}
