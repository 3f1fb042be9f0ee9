package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mcp-gateway/internal/models"
	"mcp-gateway/internal/services"
)

// GatewayHandler serves the UI-facing routes. It holds no per-request state.
type GatewayHandler struct {
	shim   shimPoster
	logger *slog.Logger
	strict bool

	chat            http.HandlerFunc
	fsList          http.HandlerFunc
	fsRead          http.HandlerFunc
	fsWrite         http.HandlerFunc
	weatherAlerts   http.HandlerFunc
	weatherForecast http.HandlerFunc
}

// NewGatewayHandler wires the six routes. By default requests are forwarded
// unchecked; with strict set, obviously malformed requests are rejected with
// 400 before the shim is called.
func NewGatewayHandler(shim shimPoster, logger *slog.Logger, strict bool) *GatewayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &GatewayHandler{shim: shim, logger: logger, strict: strict}

	addr := shim.BaseURL()
	chatDown := fmt.Sprintf("There was an error talking to the chat backend. Make sure http_shim.py is running at %s and GOOGLE_API_KEY is set.", addr)
	fsDown := fmt.Sprintf("Failed to reach file-system backend. Make sure http_shim.py is running at %s.", addr)
	weatherDown := fmt.Sprintf("Failed to reach weather backend. Make sure http_shim.py is running at %s.", addr)

	h.chat = forward(h, route[models.ChatRequest, models.ChatResponse]{
		name:     "chat",
		path:     services.PathChat,
		validate: validateChat,
		forward: func(req models.ChatRequest) interface{} {
			return models.ShimChatRequest{Message: req.Message, Reset: services.ShouldReset(req.History)}
		},
		reshape:     chatReply,
		failure:     func(msg string) models.ChatResponse { return models.ChatResponse{Reply: msg} },
		unreachable: chatDown,
	})

	h.fsList = forward(h, route[models.FsListRequest, models.ListResponse]{
		name:     "fs/list",
		path:     services.PathFsList,
		validate: validateFsList,
		forward:  func(req models.FsListRequest) interface{} { return req },
		failure: func(msg string) models.ListResponse {
			return models.ListResponse{Entries: []models.DirectoryEntry{}, Error: msg}
		},
		unreachable: fsDown,
	})

	h.fsRead = forward(h, route[models.FsReadRequest, models.ReadResponse]{
		name: "fs/read",
		path: services.PathFsRead,
		validate: func(req *models.FsReadRequest) error {
			return requireField("path", req.Path)
		},
		forward:     func(req models.FsReadRequest) interface{} { return req },
		failure:     func(msg string) models.ReadResponse { return models.ReadResponse{Content: msg} },
		unreachable: fsDown,
	})

	h.fsWrite = forward(h, route[models.FsWriteRequest, models.WriteResponse]{
		name: "fs/write",
		path: services.PathFsWrite,
		validate: func(req *models.FsWriteRequest) error {
			if err := requireField("path", req.Path); err != nil {
				return err
			}
			if req.Content == nil {
				return &services.ValidationError{Message: "content is required"}
			}
			return nil
		},
		forward:     func(req models.FsWriteRequest) interface{} { return req },
		failure:     func(msg string) models.WriteResponse { return models.WriteResponse{Message: msg} },
		unreachable: fsDown,
	})

	h.weatherAlerts = forward(h, route[models.WeatherAlertsRequest, models.RawResponse]{
		name:        "weather/alerts",
		path:        services.PathWeatherAlerts,
		validate:    validateAlerts,
		forward:     func(req models.WeatherAlertsRequest) interface{} { return req },
		failure:     func(msg string) models.RawResponse { return models.RawResponse{Raw: msg} },
		unreachable: weatherDown,
	})

	h.weatherForecast = forward(h, route[models.WeatherForecastRequest, models.RawResponse]{
		name:        "weather/forecast",
		path:        services.PathWeatherForecast,
		validate:    validateForecast,
		forward:     func(req models.WeatherForecastRequest) interface{} { return req },
		failure:     func(msg string) models.RawResponse { return models.RawResponse{Raw: msg} },
		unreachable: weatherDown,
	})

	return h
}

func (h *GatewayHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.chat(w, r)
}

func (h *GatewayHandler) FsList(w http.ResponseWriter, r *http.Request) {
	h.fsList(w, r)
}

func (h *GatewayHandler) FsRead(w http.ResponseWriter, r *http.Request) {
	h.fsRead(w, r)
}

func (h *GatewayHandler) FsWrite(w http.ResponseWriter, r *http.Request) {
	h.fsWrite(w, r)
}

func (h *GatewayHandler) WeatherAlerts(w http.ResponseWriter, r *http.Request) {
	h.weatherAlerts(w, r)
}

func (h *GatewayHandler) WeatherForecast(w http.ResponseWriter, r *http.Request) {
	h.weatherForecast(w, r)
}

// chatReply keeps only the reply field, whatever its JSON type.
func chatReply(body []byte) (interface{}, error) {
	var data struct {
		Reply json.RawMessage `json:"reply,omitempty"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ──── Validators ────

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validateChat(req *models.ChatRequest) error {
	if err := requireField("message", req.Message); err != nil {
		return err
	}
	for i, turn := range req.History {
		if turn.Role != models.RoleUser && turn.Role != models.RoleAssistant {
			return &services.ValidationError{Message: fmt.Sprintf("history[%d].role must be user or assistant", i)}
		}
	}
	return nil
}

// validateFsList mirrors the shim's default of listing the sandbox root.
func validateFsList(req *models.FsListRequest) error {
	if isBlank(req.Path) {
		root := "."
		req.Path = &root
	}
	return nil
}

func requireField(name string, val *string) error {
	if isBlank(val) {
		return &services.ValidationError{Message: name + " is required"}
	}
	return nil
}

func validateAlerts(req *models.WeatherAlertsRequest) error {
	if req.State == nil {
		return &services.ValidationError{Message: "state must be a 2-letter US code, e.g. CA"}
	}
	state := strings.ToUpper(strings.TrimSpace(*req.State))
	if len(state) != 2 || !isASCIILetters(state) {
		return &services.ValidationError{Message: "state must be a 2-letter US code, e.g. CA"}
	}
	req.State = &state
	return nil
}

func validateForecast(req *models.WeatherForecastRequest) error {
	if req.Latitude == nil || req.Longitude == nil {
		return &services.ValidationError{Message: "latitude and longitude are required"}
	}
	if lat := *req.Latitude; lat < -90 || lat > 90 {
		return &services.ValidationError{Message: "latitude must be between -90 and 90"}
	}
	if lon := *req.Longitude; lon < -180 || lon > 180 {
		return &services.ValidationError{Message: "longitude must be between -180 and 180"}
	}
	return nil
}

func isASCIILetters(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
