package http

import (
	"errors"
	"net/http"

	"github.com/wavrons/stargate/internal/app"
	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/utils"
)

type errorStatus struct {
	target error
	status int
	kind   string
}

// errorStatuses is matched in order. Timeouts wrap ErrTransport too, so they
// come first.
var errorStatuses = []errorStatus{
	{service.ErrUnsupportedFileType, http.StatusUnsupportedMediaType, "unsupported_file_type"},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "file_too_large"},
	{service.ErrQuotaExceeded, http.StatusInsufficientStorage, "quota_exceeded"},
	{crypto.ErrAuthenticationFailed, http.StatusUnprocessableEntity, "authentication_failed"},

	{store.ErrObjectNotFound, http.StatusNotFound, "object_not_found"},
	{store.ErrEntryNotFound, http.StatusNotFound, "object_not_found"},
	{store.ErrRevisionConflict, http.StatusConflict, "revision_conflict"},
	{store.ErrEntryAlreadyExists, http.StatusConflict, "revision_conflict"},
	{store.ErrUnauthorized, http.StatusBadGateway, "unauthorized"},
	{store.ErrTimeout, http.StatusGatewayTimeout, "timeout"},
	{store.ErrTransport, http.StatusGatewayTimeout, "transport_error"},

	{service.ErrInvalidPath, http.StatusBadRequest, "invalid_path"},
	{service.ErrEmptyScopeID, http.StatusBadRequest, "invalid_path"},
	{service.ErrInvalidScopeID, http.StatusBadRequest, "invalid_path"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "invalid_data"},
	{ErrNoFileProvided, http.StatusBadRequest, "invalid_data"},
	{ErrRouteNotFound, http.StatusNotFound, "not_found"},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "invalid_token"},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "invalid_token"},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "invalid_token"},

	{store.ErrLedgerBusy, http.StatusServiceUnavailable, "ledger_busy"},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError, "internal"},
	{store.ErrExecutingQuery, http.StatusInternalServerError, "internal"},
	{store.ErrScanningRow, http.StatusInternalServerError, "internal"},
	{store.ErrScanningRows, http.StatusInternalServerError, "internal"},
}

func statusFromError(err error) (int, string) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge, "file_too_large"
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.kind
		}
	}
	return http.StatusInternalServerError, "internal"
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	RemainingBytes *int64 `json:"remaining_bytes,omitempty"`
	LimitBytes     *int64 `json:"limit_bytes,omitempty"`
}

func newErrorResponse(err error) (int, errorResponse) {
	status, kind := statusFromError(err)
	resp := errorResponse{Error: kind, Message: app.UserMessage(err)}

	var (
		quotaErr *service.QuotaExceededError
		sizeErr  *service.FileTooLargeError
		tooBig   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &quotaErr):
		resp.RemainingBytes = &quotaErr.Remaining
		resp.LimitBytes = &quotaErr.Limit
	case errors.As(err, &sizeErr):
		resp.LimitBytes = &sizeErr.Limit
	case errors.As(err, &tooBig):
		resp.Message = "File too large. Max " + app.FormatMB(tooBig.Limit) + " per request."
		resp.LimitBytes = &tooBig.Limit
	}

	return status, resp
}

// writeError logs err with the request-scoped logger and writes the mapped
// status and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, resp := newErrorResponse(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	if _, wErr := utils.WriteJSON(w, resp, status); wErr != nil {
		log.Err(wErr).Str("func", funcName).Msg("error writing error response")
	}
}
