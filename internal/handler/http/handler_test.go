package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/mock"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/models"
)

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const testToken = "good-token"

type testServices struct {
	library *mock.MockLibraryService
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
}

// newTestRouter wires mocked services behind the real router. Any bearer
// token other than testToken is rejected.
func newTestRouter(t *testing.T, cfg *config.StructuredConfig) (http.Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	svcs := testServices{
		library: mock.NewMockLibraryService(ctrl),
		auth:    mock.NewMockAuthService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	svcs.auth.EXPECT().ParseToken(gomock.Any(), testToken).
		Return(models.Token{Caller: "user-1"}, nil).AnyTimes()
	svcs.auth.EXPECT().ParseToken(gomock.Any(), gomock.Not(testToken)).
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()

	h := NewHandler(&service.Services{
		LibraryService: svcs.library,
		AuthService:    svcs.auth,
		AppInfoService: svcs.appInfo,
	}, cfg, logger.Nop())

	return h.Init(), svcs
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func multipartBody(t *testing.T, field, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	t.Run("without config", func(t *testing.T) {
		svc := &service.Services{}
		h := NewHandler(svc, nil, logger.Nop())

		require.NotNil(t, h)
		assert.Same(t, svc, h.services)
		assert.Zero(t, h.maxBodyBytes)
		assert.Zero(t, h.requestTimeout)
	})

	t.Run("limits from config", func(t *testing.T) {
		cfg := &config.StructuredConfig{
			Vault:  config.Vault{MaxFileSize: 10 << 20},
			Server: config.Server{RequestTimeout: time.Minute},
		}
		h := NewHandler(&service.Services{}, cfg, logger.Nop())

		assert.Equal(t, int64(10<<20+multipartOverhead), h.maxBodyBytes)
		assert.Equal(t, time.Minute, h.requestTimeout)
	})
}

// ─────────────────────────────────────────────
// Routing
// ─────────────────────────────────────────────

func TestInit_VersionIsPublic(t *testing.T) {
	router, svcs := newTestRouter(t, nil)
	svcs.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_LimitsArePublic(t *testing.T) {
	router, svcs := newTestRouter(t, nil)
	svcs.appInfo.EXPECT().GetLimits(gomock.Any()).Return(models.VaultLimits{
		MaxFileSizeBytes: 10 << 20,
		ScopeQuotaBytes:  100 << 20,
		AcceptedTypes:    []string{"image/png"},
	})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/limits/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.VaultLimits
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(10<<20), got.MaxFileSizeBytes)
	assert.Equal(t, []string{"image/png"}, got.AcceptedTypes)
}

func TestInit_UnknownRouteIs404JSON(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestInit_UnsupportedMethodIs404(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := serve(router, authorized(httptest.NewRequest(http.MethodPut, "/api/scopes/trip-1/images", nil)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_ScopeRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/scopes/trip-1/images"},
		{http.MethodPost, "/api/scopes/trip-1/images"},
		{http.MethodGet, "/api/scopes/trip-1/images/abc.jpg.enc"},
		{http.MethodDelete, "/api/scopes/trip-1/images/abc.jpg.enc"},
		{http.MethodGet, "/api/scopes/trip-1/usage"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "invalid_token", decodeError(t, rec).Error)

			req := httptest.NewRequest(rt.method, rt.path, nil)
			req.Header.Set("Authorization", "Bearer expired")
			rec = serve(router, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
