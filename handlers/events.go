// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/middleware"
	"github.com/mythenpark/parkvote/models"
)

type EventHandler struct {
	dir *events.Directory
}

func NewEventHandler(dir *events.Directory) *EventHandler {
	return &EventHandler{dir: dir}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{
		Events: h.dir.List(),
	})
}
