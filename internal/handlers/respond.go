package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

func respondJSON(logger *utils.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes {"error": message}. Only *utils.AppError messages
// reach the client.
func respondError(logger *utils.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request error", "status", status, "error", err)
	} else {
		logger.Warn("Request rejected", "status", status, "error", message)
	}

	respondJSON(logger, w, status, map[string]string{"error": message})
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(logger *utils.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(logger, w, utils.NewNotFoundError("Not found"))
	})
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(logger *utils.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(logger, w, utils.NewMethodNotAllowedError("Method not allowed"))
	})
}
