package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mcp-gateway/internal/services"
)

type shimPoster interface {
	Post(ctx context.Context, path string, body interface{}) (*services.ShimResult, error)
	BaseURL() string
}

// route describes one capability: what comes in, where it goes and what
// the UI gets back. In is the inbound body, Out the response shape built on
// failure.
type route[In any, Out any] struct {
	name string
	path string
	// validate may normalize the request in place. Only consulted in strict mode.
	validate func(*In) error
	forward  func(In) interface{}
	// reshape rebuilds a 2xx body in the route's shape. Nil echoes the shim's
	// JSON untouched.
	reshape     func(body []byte) (interface{}, error)
	failure     func(msg string) Out
	unreachable string
}

// forward returns the handler for rt. Every outcome ends in a JSON body in
// the route's shape; nothing escapes as a bare error.
func forward[In any, Out any](h *GatewayHandler, rt route[In, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.logger.With("route", rt.name, "request_id", requestID(r))

		var in In
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			log.Warn("invalid request body", "error", err)
			writeJSON(w, http.StatusBadRequest, rt.failure("Invalid request body"))
			return
		}

		if h.strict && rt.validate != nil {
			if err := rt.validate(&in); err != nil {
				log.Warn("request rejected", "error", err)
				writeJSON(w, http.StatusBadRequest, rt.failure("Invalid request: "+err.Error()))
				return
			}
		}

		res, err := h.shim.Post(r.Context(), rt.path, rt.forward(in))
		status, body := normalize(log, rt, res, err)
		writeJSON(w, status, body)
	}
}

// normalize maps a shim outcome onto the route's response shape.
func normalize[In any, Out any](log *slog.Logger, rt route[In, Out], res *services.ShimResult, err error) (int, interface{}) {
	if err != nil {
		var httpErr *services.HTTPError
		if errors.As(err, &httpErr) {
			log.Error("shim returned error", "path", rt.path, "status", httpErr.Status, "body", httpErr.Body)
			return httpErr.Status, rt.failure(fmt.Sprintf("Error from backend: %d %s", httpErr.Status, httpErr.Body))
		}
		log.Error("shim call failed", "path", rt.path, "error", err)
		return http.StatusInternalServerError, rt.failure(rt.unreachable)
	}

	if rt.reshape == nil {
		if !json.Valid(res.Body) {
			log.Error("malformed shim response", "path", rt.path, "status", res.Status)
			return http.StatusInternalServerError, rt.failure(rt.unreachable)
		}
		return res.Status, json.RawMessage(res.Body)
	}

	out, err := rt.reshape(res.Body)
	if err != nil {
		log.Error("malformed shim response", "path", rt.path, "status", res.Status, "error", err)
		return http.StatusInternalServerError, rt.failure(rt.unreachable)
	}
	return res.Status, out
}
