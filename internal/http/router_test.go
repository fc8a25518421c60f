package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/boardkit/go-board-backend/internal/config"
	"github.com/boardkit/go-board-backend/internal/http/handlers"
	"github.com/boardkit/go-board-backend/internal/services"
	"github.com/boardkit/go-board-backend/internal/store"
	"github.com/boardkit/go-board-backend/internal/sweep"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(filepath.Join(t.TempDir(), "messages.json"), zerolog.Nop())
	svc := services.NewMessageService(st)
	sw := sweep.New(svc, zerolog.Nop())
	t.Cleanup(sw.Stop)

	r := gin.New()
	RegisterRoutes(r, handlers.New(svc, sw, cfg), cfg)
	return r
}

func baseConfig() config.Config {
	return config.Config{
		Env:       "development",
		RateRPS:   1000,
		RateBurst: 1000,
		Security: config.SecurityConfig{
			HSTSMaxAge: time.Hour,
		},
	}
}

func TestRouter_EndToEndCreateListDelete(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	// Create.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The static + param siblings under /messages must coexist: the
	// older-than route must not be captured by :id.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/messages/older-than", strings.NewReader(`{"hours":24}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("older-than routed wrong: %d body=%s", w.Code, w.Body.String())
	}

	// Delete by id still works.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/messages/"+created.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete by id: %d body=%s", w.Code, w.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id middleware not active")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}

func TestRouter_UnmatchedRouteEnvelope(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/messages", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: %d", w.Code)
	}
	var body struct {
		Error  string `json:"error"`
		Path   string `json:"path"`
		Method string `json:"method"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Route not found" || body.Path != "/messages" || body.Method != http.MethodPut {
		t.Fatalf("body: %+v", body)
	}
}

func TestRouter_CORSAllowsAllInDevelopment(t *testing.T) {
	r := newTestRouter(t, baseConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO: %q", got)
	}
}

func TestRouter_CORSAllowlistInProduction(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.CORS.AllowedOrigins = []string{"https://board.example"}
	r := newTestRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("Origin", "https://board.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://board.example" {
		t.Fatalf("allowlisted ACAO: %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin must not be echoed, got %q", got)
	}
}
