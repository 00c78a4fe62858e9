// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/onomate/cliparse"
	"github.com/danielhkuo/onomate/db"
	"github.com/danielhkuo/onomate/facilitator"
	"github.com/danielhkuo/onomate/handlers"
	"github.com/danielhkuo/onomate/middleware"
)

func NewRouter(store *db.Store, fac *facilitator.Facilitator, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, fac, cfg)
	nameHandler := handlers.NewNameHandler(cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("GET /sessions/{id}/names", middleware.WithLogging(sessionHandler.ListNames))

	// Founder operations (require X-Founder-Token)
	mux.HandleFunc("POST /sessions/{id}/messages", middleware.WithLogging(sessionHandler.SendMessage))
	mux.HandleFunc("PUT /sessions/{id}/names/{nameId}/reaction", middleware.WithLogging(sessionHandler.React))

	// Stateless name scoring
	mux.HandleFunc("POST /names/analyze", middleware.WithLogging(nameHandler.Analyze))
	mux.HandleFunc("POST /names/rank", middleware.WithLogging(nameHandler.Rank))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("onomate API v1"))
	})

	return mux
}
