package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wavrons/stargate/internal/app"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/handler"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/server"
	"github.com/wavrons/stargate/internal/telemetry"
	"github.com/wavrons/stargate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("stargate-server")

	fs := pflag.NewFlagSet("stargate-server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("error parsing flags")
	}

	cfg, err := config.GetStructuredConfig(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing tracing")
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Err(err).Msg("error flushing traces")
		}
	}()

	vault, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault")
	}
	defer vault.Close()

	handlers, err := handler.NewHandlers(vault.Services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
