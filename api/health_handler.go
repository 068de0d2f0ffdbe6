package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devtracker-backend/errs"
)

type healthHandler struct {
	responder   Responder
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		db:          db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// getHealth pings the database pool
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} ErrorResponse "Database unavailable"
// @Router /healthz [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(r.Context()); err != nil {
			unavailable := errs.NewApiErr(http.StatusServiceUnavailable, "Database unavailable.")
			unavailable.Cause = err
			h.responder.WriteError(w, r, unavailable)
			return
		}

		h.responder.WriteJSON(w, healthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
