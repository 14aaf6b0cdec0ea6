package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON serializes the payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError maps a typed error onto the wire contract. Bodies are always
// {"error": message}; validation errors may carry a details object. Untyped
// and internal errors never leak their message to the caller.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unhandled error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	message := typed.Message()
	if message == "" || typed.Code() == pkgerrors.CodeInternal {
		message = meta.PublicMessage
	}

	body := errorBody{Error: message}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Warn(ctx, "request rejected: "+typed.Error())
		}
	}

	WriteJSON(w, meta.HTTPStatus, body)
}
