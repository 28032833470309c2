// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/next-read/handlers"
	"github.com/danielhkuo/next-read/middleware"
)

func NewRouter(nh *handlers.NominationHandler, ph *handlers.PollHandler, wh *handlers.WinnerHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Nominations
	mux.HandleFunc("POST /communities/{id}/nominations", middleware.WithLogging(nh.Nominate))
	mux.HandleFunc("GET /communities/{id}/nominations", middleware.WithLogging(nh.List))
	mux.HandleFunc("DELETE /communities/{id}/nominations", middleware.WithLogging(nh.Clear))

	// Poll lifecycle (operator operations)
	mux.HandleFunc("POST /communities/{id}/poll", middleware.WithLogging(ph.Start))
	mux.HandleFunc("POST /communities/{id}/poll/close", middleware.WithLogging(ph.Close))
	mux.HandleFunc("POST /communities/{id}/poll/final", middleware.WithLogging(ph.StartFinal))
	mux.HandleFunc("GET /communities/{id}/poll", middleware.WithLogging(ph.Status))

	// Voting (public)
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(ph.Vote))

	// History
	mux.HandleFunc("GET /communities/{id}/winners", middleware.WithLogging(wh.Past))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("next-read API v1"))
	})

	return mux
}
