package api

import (
	"database/sql"
	"net/http"
)

// HealthHandler reports service and database availability.
type HealthHandler struct {
	DB *sql.DB
}

// Check handles GET /health with a database ping.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		jsonError(w, http.StatusInternalServerError, "database unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
