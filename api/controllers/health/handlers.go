package health

import (
	"context"
	"net/http"
	"time"

	"github.com/quotedesk/quotedesk-backend/api/responses"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

const checkTimeout = 5 * time.Second

// Pinger is any dependency with a reachability check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves liveness and readiness probes.
type Handler struct {
	logg    *logger.Logger
	pingers map[string]Pinger
}

func NewHandler(logg *logger.Logger, pingers map[string]Pinger) *Handler {
	return &Handler{logg: logg, pingers: pingers}
}

// Live reports that the process is up.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready checks every registered dependency.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	statuses := make(map[string]string, len(h.pingers))
	healthy := true
	for name, pinger := range h.pingers {
		if err := pinger.Ping(ctx); err != nil {
			healthy = false
			statuses[name] = err.Error()
			continue
		}
		statuses[name] = "ok"
	}

	if !healthy {
		responses.WriteError(ctx, w, h.logg,
			pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(statuses))
		return
	}
	responses.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "checks": statuses})
}
