// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/mythenpark/parkvote/cliparse"
	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/handlers"
	"github.com/mythenpark/parkvote/ledger"
	"github.com/mythenpark/parkvote/middleware"
)

func NewRouter(svc *ledger.Service, dir *events.Directory, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(svc, cfg)
	eventHandler := handlers.NewEventHandler(dir)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event catalog (public)
	mux.HandleFunc("GET /api/events", middleware.WithLogging(eventHandler.List))

	// Participation ledger (public)
	mux.HandleFunc("GET /api/votes", middleware.WithLogging(voteHandler.GetState))
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(voteHandler.Vote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("parkvote API v1"))
	})

	return mux
}
