package handlers

import (
	"net/http"
	"time"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

type HealthHandler struct {
	logger *utils.Logger
	now    func() time.Time
}

func NewHealthHandler(logger *utils.Logger) *HealthHandler {
	return &HealthHandler{logger: logger, now: time.Now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
	})
}
