package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"docpilot/internal/config"
	"docpilot/internal/handler"
	"docpilot/internal/metrics"
	"docpilot/internal/router"
	"docpilot/internal/service"
	"docpilot/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(requests int) (*gin.Engine, *mocks.MockChatService) {
	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Upload:    config.UploadConfig{MaxFileSizeMB: 1},
		Upstage:   config.UpstageConfig{APIKey: "up_test_key_123"},
		RateLimit: config.RateLimitConfig{Requests: requests, Window: time.Minute},
		Metrics:   config.MetricsConfig{Enabled: true},
	}
	intake := service.NewFileIntake(&cfg.Upload)
	chat := new(mocks.MockChatService)

	return router.Setup(
		cfg,
		metrics.New(),
		handler.NewRelayHandler(intake, new(mocks.MockDocumentService), new(mocks.MockExtractionService), chat),
		handler.NewHealthHandler(&cfg.Upstage, nil),
		handler.NewAnalysisHandler(intake, new(mocks.MockAnalysisService)),
		handler.NewConversationHandler(chat),
		handler.NewExtractionHandler(intake, new(mocks.MockExtractionService)),
		handler.NewSchemaHandler(),
		handler.NewExportHandler(),
	), chat
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthRoutes(t *testing.T) {
	r, _ := newEngine(0)

	for _, path := range []string{"/api/health", "/healthz", "/readyz"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_SchemasAndMetrics(t *testing.T) {
	r, _ := newEngine(0)

	w := serve(r, http.MethodGet, "/api/v1/schemas/receipt", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `docpilot_http_requests_total`)
}

func TestRouter_VendorRoutesRateLimited(t *testing.T) {
	r, _ := newEngine(1)

	// The first request is spent on a validation failure; it still counts.
	w := serve(r, http.MethodPost, "/api/solar-chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/api/solar-chat", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Non-vendor routes are not limited.
	w = serve(r, http.MethodGet, "/api/v1/schemas", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newEngine(0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/document-parse", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _ := newEngine(0)

	w := serve(r, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/document-parse"`)
}
