package adapter

import (
	"fmt"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
)

// NewContentBackend selects the backend named by repoCfg.Backend.
func NewContentBackend(repoCfg config.Repo, adapterCfg config.Adapter, token string, logger *logger.Logger) (ContentBackend, error) {
	switch repoCfg.Backend {
	case config.BackendMemory:
		logger.Warn().Str("func", "adapter.NewContentBackend").Msg("using in-memory content backend, objects are lost on exit")
		return NewMemoryContentBackend(), nil
	case config.BackendGitHub, "":
		return NewGitHubContentBackend(repoCfg, adapterCfg, token, logger)
	default:
		return nil, fmt.Errorf("unknown content backend %q", repoCfg.Backend)
	}
}
