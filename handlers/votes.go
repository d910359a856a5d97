// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mythenpark/parkvote/cliparse"
	"github.com/mythenpark/parkvote/deviceid"
	"github.com/mythenpark/parkvote/ledger"
	"github.com/mythenpark/parkvote/middleware"
	"github.com/mythenpark/parkvote/models"
)

type VoteHandler struct {
	ledger *ledger.Service
	cfg    cliparse.Config
}

func NewVoteHandler(svc *ledger.Service, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{ledger: svc, cfg: cfg}
}

// GetState handles GET /api/votes
// Returns all aggregate counts, plus the requesting device's vote set
// when a deviceId query parameter is supplied.
func (h *VoteHandler) GetState(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")

	state, err := h.ledger.State(r.Context(), deviceID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to read votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}

// Vote handles POST /api/votes
// Casts or retracts a vote depending on the action field. deviceId is
// mandatory for writes; a malformed request is rejected before any
// storage access.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EventID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "eventId is required")
		return
	}
	if req.DeviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "deviceId is required")
		return
	}
	if req.Action != models.ActionUpvote && req.Action != models.ActionDownvote {
		middleware.ErrorResponse(w, http.StatusBadRequest, "action must be upvote or downvote")
		return
	}

	var count int
	var err error
	if req.Action == models.ActionUpvote {
		ipHash := deviceid.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
		count, err = h.ledger.Cast(r.Context(), req.EventID, req.DeviceID, ipHash)
	} else {
		count, err = h.ledger.Retract(r.Context(), req.EventID, req.DeviceID)
	}

	switch {
	case errors.Is(err, models.ErrAlreadyVoted):
		middleware.JSONResponse(w, http.StatusBadRequest, models.VoteConflictResponse{
			Error:        models.MsgAlreadyParticipating,
			AlreadyVoted: true,
			Votes:        count,
		})
		return
	case errors.Is(err, models.ErrNotVoted):
		middleware.JSONResponse(w, http.StatusBadRequest, models.VoteConflictResponse{
			Error:        models.MsgNotParticipating,
			AlreadyVoted: false,
			Votes:        count,
		})
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to update vote")
		return
	}

	slog.Info("vote recorded", "event_id", req.EventID, "action", req.Action, "votes", count)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		EventID:      req.EventID,
		Votes:        count,
		AlreadyVoted: false,
	})
}
