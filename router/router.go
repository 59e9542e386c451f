// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/billdesk/assignment"
	"github.com/danielhkuo/billdesk/auth"
	"github.com/danielhkuo/billdesk/cliparse"
	"github.com/danielhkuo/billdesk/handlers"
	"github.com/danielhkuo/billdesk/metrics"
	"github.com/danielhkuo/billdesk/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.TokenHours)*time.Hour)
	coordinator := assignment.NewCoordinator(db, assignment.Config{Cap: cfg.AssignCap})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, jwtManager)
	billHandler := handlers.NewBillHandler(db)
	assignHandler := handlers.NewAssignHandler(coordinator)

	// public wraps a handler with logging and metrics
	public := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(metrics.WithMetrics(pattern, h))
	}
	// private additionally requires a valid Bearer token
	private := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return public(pattern, middleware.RequireUser(jwtManager, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Accounts
	mux.HandleFunc("POST /auth/register", public("POST /auth/register", userHandler.Register))
	mux.HandleFunc("POST /auth/login", public("POST /auth/login", userHandler.Login))
	mux.HandleFunc("GET /users/{id}", public("GET /users/{id}", userHandler.GetUser))
	mux.HandleFunc("GET /users/{id}/bills", public("GET /users/{id}/bills", userHandler.GetUserBills))

	// Bills
	mux.HandleFunc("POST /bills", private("POST /bills", billHandler.CreateBill))
	mux.HandleFunc("GET /bills", public("GET /bills", billHandler.ListBills))
	mux.HandleFunc("GET /bills/{id}", public("GET /bills/{id}", billHandler.GetBill))
	mux.HandleFunc("PUT /bills/{id}/stage", private("PUT /bills/{id}/stage", billHandler.TransitionStage))

	// Assignment
	mux.HandleFunc("POST /bills/{id}/assign", private("POST /bills/{id}/assign", assignHandler.AssignBill))
	mux.HandleFunc("POST /assignments", private("POST /assignments", assignHandler.AssignNext))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("billdesk API v1"))
	})

	// CORS wraps the whole mux so preflight requests are answered before
	// route matching.
	return middleware.CORS(mux)
}
