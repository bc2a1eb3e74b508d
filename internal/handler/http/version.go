package http

import (
	"net/http"

	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Send()
	}
}

// getLimits serves the upload limits so the UI can refuse a file locally.
func (h *Handler) getLimits(w http.ResponseWriter, r *http.Request) {
	limits := h.services.AppInfoService.GetLimits(r.Context())
	if _, err := utils.WriteJSON(w, limits, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getLimits").Send()
	}
}
