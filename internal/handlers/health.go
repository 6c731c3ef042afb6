package handlers

import (
	"net/http"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/schema"
)

// HealthHandler reports liveness and the schema revisions the service reads.
type HealthHandler struct {
	logger *common.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

type healthResponse struct {
	Status  string   `json:"status"`
	Schemas []string `json:"schemas"`
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Schemas: []string{schema.Legacy.String(), schema.Current.String()},
	})
}
