package handler

import (
	"encoding/json"
	"net/http"

	"github.com/glimpse-search/glimpse/internal/search"
)

// writeJSON writes a plain Go value (map, struct) as JSON
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeData wraps any value in { data: ... }
func writeData(w http.ResponseWriter, code int, v any) {
	writeJSON(w, code, map[string]any{"data": v})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg, "code": "ERROR", "message": msg})
}

// writeTypedError maps a pipeline/search failure onto an HTTP status via its
// error class.
func writeTypedError(w http.ResponseWriter, err error) {
	writeError(w, errorTypeToHTTP(search.ClassifyError(err)), err.Error())
}

func errorTypeToHTTP(errorType string) int {
	switch errorType {
	case search.ErrorTypeConfig:
		return http.StatusServiceUnavailable
	case search.ErrorTypeRateLimit:
		return http.StatusTooManyRequests
	case search.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case search.ErrorTypeNetwork, search.ErrorTypeUpstream5xx:
		return http.StatusBadGateway
	case search.ErrorTypeContract:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
