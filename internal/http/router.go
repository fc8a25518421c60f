// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as correlation IDs, logging, panic recovery, metrics, compression, rate
// limiting, CORS, and security headers.
//
// Middleware order matters:
//  1. RequestID: generate/propagate correlation id
//  2. Logger: structured access logs
//  3. Recovery: capture panics after logger
//  4. Body size limiter
//  5. Gzip compression
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and security headers
package httpapi

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boardkit/go-board-backend/internal/config"
	"github.com/boardkit/go-board-backend/internal/http/handlers"
	"github.com/boardkit/go-board-backend/internal/http/middleware"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability, abuse control, CORS posture, fallbacks, the message
// API, and the static browser client.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, cfg config.Config) {
	// 1) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 2) Structured logging
	r.Use(middleware.Logger())

	// 3) Panic recovery to JSON 500; detail only in development
	r.Use(middleware.Recovery(cfg.IsDevelopment()))

	// 4) Global body size limit (64 KiB; message bodies are short text)
	r.Use(limitBody(64 << 10))

	// 5) Compression for the list endpoint and static client
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	r.Use(rl.Handler())

	// 8) CORS posture: development (or an empty allowlist) allows all
	// origins; production echoes only allowlisted ones.
	if cfg.IsDevelopment() || len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallback: anything unmatched, including method mismatches, is a 404
	// with the offending path and method echoed back.
	r.NoRoute(handlers.NoRoute)

	// System endpoints
	r.GET("/health", h.Health)
	r.GET("/info", h.Info)

	// Message API
	r.GET("/messages", h.ListMessages)
	r.POST("/messages", h.CreateMessage)
	r.DELETE("/messages", h.DeleteAllMessages)
	r.DELETE("/messages/older-than", h.DeleteOlderThan)
	r.DELETE("/messages/:id", h.DeleteMessage)
	r.POST("/messages/auto-delete", h.SetAutoDelete)
	r.GET("/messages/auto-delete", h.GetAutoDelete)

	// Static browser client
	if cfg.WebDir != "" {
		r.StaticFile("/", filepath.Join(cfg.WebDir, "index.html"))
		r.StaticFile("/app.js", filepath.Join(cfg.WebDir, "app.js"))
		r.StaticFile("/style.css", filepath.Join(cfg.WebDir, "style.css"))
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints using http.MaxBytesReader. Requests exceeding the cap cause
// downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
