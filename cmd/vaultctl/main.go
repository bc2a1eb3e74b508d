// Command vaultctl operates the stargate image vault from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wavrons/stargate/internal/app"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// skipConfigAnnotation marks commands that run without a validated config.
const skipConfigAnnotation = "stargate/skip-config"

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	logLevel string
	output   string
	failFast bool

	out io.Writer
	log *logger.Logger
	cfg *config.StructuredConfig

	vault *app.App
}

func main() {
	c := &cli{out: os.Stdout}
	if err := c.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Encrypted image vault CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.log = logger.NewCLILogger("vaultctl", c.logLevel)
			if cmd.Annotations[skipConfigAnnotation] != "" {
				return nil
			}

			cfg, err := config.GetStructuredConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.vault.Close()
		},
	}

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "text", "Output format: text, json")
	root.PersistentFlags().BoolVar(&c.failFast, "fail-fast", false, "Stop a batch at the first failed file")

	root.AddCommand(
		c.uploadCmd(),
		c.downloadCmd(),
		c.deleteCmd(),
		c.listCmd(),
		c.usageCmd(),
		c.sealTokenCmd(),
		c.openTokenCmd(),
		c.tokenCmd(),
		c.versionCmd(),
	)

	return root
}

// open wires the vault on first use.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	if c.vault != nil {
		return c.vault, nil
	}
	vault, err := app.Bootstrap(ctx, c.cfg, c.log)
	if err != nil {
		return nil, err
	}
	c.vault = vault
	return vault, nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(c.out, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		},
	}
}
