package api

import (
	"database/sql"
	"net/http"

	"github.com/stripscan/stripscan/internal/submission"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, svc *submission.Service, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	subsHandler := &SubmissionsHandler{Service: svc}
	healthHandler := &HealthHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public.
	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	mux.Handle("POST /api/test-strips/upload", authMW(http.HandlerFunc(subsHandler.Upload)))
	mux.Handle("GET /api/test-strips", authMW(http.HandlerFunc(subsHandler.List)))
	mux.Handle("GET /api/test-strips/{id}", authMW(http.HandlerFunc(subsHandler.Get)))

	return mux
}
