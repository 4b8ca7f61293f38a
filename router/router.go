// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-rate/catalog"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/handlers"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/notify"
	"github.com/danielhkuo/quickly-rate/session"
)

func NewRouter(cfg cliparse.Config, store *session.Store, hub *notify.Hub, items *catalog.Repository) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, items, cfg)
	eventsHandler := handlers.NewEventsHandler(store, hub)
	itemHandler := handlers.NewItemHandler(items)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/votes", middleware.WithLogging(sessionHandler.SubmitVote))
	mux.HandleFunc("GET /sessions/{id}/results", middleware.WithLogging(sessionHandler.GetResults))

	// Live results
	mux.HandleFunc("GET /sessions/{id}/events", middleware.WithLogging(eventsHandler.Stream))

	// Catalogue metadata
	mux.HandleFunc("POST /items", middleware.WithLogging(itemHandler.Upsert))
	mux.HandleFunc("GET /items/{id}", middleware.WithLogging(itemHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-rate API v1"))
	})

	return mux
}
