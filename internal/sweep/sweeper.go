// Package sweep runs the periodic auto-delete job. Exactly one sweep
// schedule exists per process; reconfiguring atomically cancels the previous
// timer and installs a new one.
//
// Each tick recomputes the cutoff from "now" using the hours value captured
// when the schedule was installed — a later reconfiguration replaces the
// whole schedule rather than mutating a live one.
package sweep

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/go-board-backend/internal/services"
)

// Sweeper owns the process-wide auto-delete schedule.
// It is safe for concurrent use.
type Sweeper struct {
	svc *services.MessageService
	log zerolog.Logger

	// OnRemoved, when set, is invoked after each tick that removed at least
	// one message (used to feed metrics without coupling to the HTTP layer).
	OnRemoved func(removed int)

	mu    sync.Mutex
	hours float64
	stop  chan struct{}
}

// New returns a Sweeper that deletes through svc. No schedule is active
// until Reconfigure is called.
func New(svc *services.MessageService, log zerolog.Logger) *Sweeper {
	return &Sweeper{svc: svc, log: log.With().Str("component", "sweep").Logger()}
}

// Reconfigure cancels any active schedule and installs a new repeating one
// with period hours·1h. Hours must be positive; zero and negatives return
// services.ErrInvalidHours and leave the current schedule untouched.
func (sw *Sweeper) Reconfigure(hours float64) error {
	if hours <= 0 {
		return services.ErrInvalidHours
	}

	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.stop != nil {
		close(sw.stop)
	}
	sw.hours = hours
	sw.stop = make(chan struct{})

	period := time.Duration(hours * float64(time.Hour))
	go sw.run(hours, period, sw.stop)

	sw.log.Info().Float64("hours", hours).Dur("period", period).Msg("auto-delete schedule installed")
	return nil
}

// run executes sweep ticks until stop is closed. The hours value is the one
// captured at schedule time.
func (sw *Sweeper) run(hours float64, period time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			removed, err := sw.svc.DeleteOlderThan(hours)
			if err != nil {
				sw.log.Error().Err(err).Float64("hours", hours).Msg("sweep failed")
				continue
			}
			if removed > 0 {
				sw.log.Info().Int("removed", removed).Float64("hours", hours).Msg("sweep removed expired messages")
				if sw.OnRemoved != nil {
					sw.OnRemoved(removed)
				}
			}
		}
	}
}

// Current returns the hours window of the active schedule, or 0 when no
// schedule has been installed.
func (sw *Sweeper) Current() float64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.hours
}

// Stop cancels the active schedule, if any. Used on shutdown.
func (sw *Sweeper) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.stop != nil {
		close(sw.stop)
		sw.stop = nil
	}
}
