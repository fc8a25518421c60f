// Package handlers – shared handler wiring.
//
// Handlers bundles the application services the HTTP endpoints depend on.
// Endpoints stay transport-thin: they validate and shape requests, delegate
// to the message service and sweeper, and translate service errors into
// HTTP results.
package handlers

import (
	"time"

	"github.com/boardkit/go-board-backend/internal/config"
	"github.com/boardkit/go-board-backend/internal/services"
	"github.com/boardkit/go-board-backend/internal/sweep"
)

// Handlers owns the dependencies shared by all endpoints.
type Handlers struct {
	msgSvc    *services.MessageService
	sweeper   *sweep.Sweeper
	cfg       config.Config
	startedAt time.Time
}

// New constructs the handler set.
func New(msgSvc *services.MessageService, sweeper *sweep.Sweeper, cfg config.Config) *Handlers {
	return &Handlers{
		msgSvc:    msgSvc,
		sweeper:   sweeper,
		cfg:       cfg,
		startedAt: time.Now().UTC(),
	}
}
