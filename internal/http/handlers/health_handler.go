// Health and metadata HTTP handlers.
//
// GET /health reports liveness plus a storage signal: fail-soft reads mean a
// corrupt data file never breaks the API, so the health payload is the one
// place that surfaces the degradation.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boardkit/go-board-backend/internal/config"
	"github.com/boardkit/go-board-backend/internal/domain"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Timestamp   string `json:"timestamp" example:"2026-01-02T15:04:05.000Z"`
	Environment string `json:"environment" example:"development"`
	Service     string `json:"service" example:"message-board-api"`
	Storage     string `json:"storage" example:"ok"`
}

// InfoResponse is the service metadata payload.
type InfoResponse struct {
	Service     string   `json:"service"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Environment string   `json:"environment"`
	Uptime      string   `json:"uptime"`
	Endpoints   []string `json:"endpoints"`
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Tags        System
// @Produce     json
// @Success     200  {object} handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	storage := "ok"
	if h.msgSvc.Store.LoadError() != nil {
		storage = "degraded"
	}
	ok(c, http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   domain.FormatTimestamp(time.Now()),
		Environment: h.cfg.Env,
		Service:     config.ServiceName,
		Storage:     storage,
	})
}

// Info godoc
// @ID          info
// @Summary     Service metadata
// @Tags        System
// @Produce     json
// @Success     200  {object} handlers.InfoResponse
// @Router      /info [get]
func (h *Handlers) Info(c *gin.Context) {
	ok(c, http.StatusOK, InfoResponse{
		Service:     config.ServiceName,
		Version:     config.ServiceVersion,
		Description: "Minimal message board with flat-file persistence and time-based expiry",
		Environment: h.cfg.Env,
		Uptime:      time.Since(h.startedAt).Truncate(time.Second).String(),
		Endpoints: []string{
			"GET /health",
			"GET /info",
			"GET /messages",
			"POST /messages",
			"DELETE /messages/:id",
			"DELETE /messages",
			"DELETE /messages/older-than",
			"POST /messages/auto-delete",
			"GET /messages/auto-delete",
		},
	})
}
