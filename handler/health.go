package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Pinger is the readiness probe against the backing store.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
	log  *zap.SugaredLogger
}

func NewHealthHandler(ping Pinger, log *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		ping: ping,
		log:  log,
	}
}

// Ready reports whether the service can reach its store.
func (hh HealthHandler) Ready(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := hh.ping(ctx); err != nil {
		hh.log.Errorw("health.Ready", "error", err.Error())
		respondErr(ctx, rw, http.StatusServiceUnavailable, errors.New("store unavailable"))
		return
	}

	respond(ctx, rw, http.StatusOK, map[string]string{"status": "ok"})
}
