package handler

import (
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/handler/http"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg == nil || cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
