// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mythenpark/parkvote/models"
)

// StateMismatchError reports that the server disagreed with the
// client's idea of its own vote (e.g. the user already joined from
// another tab). AlreadyVoted is the server-implied truth; Votes is
// the authoritative count, so no follow-up read is needed.
type StateMismatchError struct {
	AlreadyVoted bool
	Votes        int
	Message      string
}

func (e *StateMismatchError) Error() string {
	return e.Message
}

// API is the thin HTTP wrapper around the vote ledger endpoints. It
// only speaks the wire contract; the optimistic state machine lives
// in Participant.
type API struct {
	BaseURL    string
	DeviceID   string
	HTTPClient *http.Client
}

func NewAPI(baseURL, deviceID string) *API {
	return &API{
		BaseURL:    baseURL,
		DeviceID:   deviceID,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchState retrieves all counts plus this device's vote set.
func (a *API) FetchState(ctx context.Context) (models.StateResponse, error) {
	u := a.BaseURL + "/api/votes?deviceId=" + url.QueryEscape(a.DeviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.StateResponse{}, err
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return models.StateResponse{}, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.StateResponse{}, fmt.Errorf("fetch state: unexpected status %d", resp.StatusCode)
	}

	var state models.StateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return models.StateResponse{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

// SendVote issues a vote write. A state-mismatch rejection comes back
// as *StateMismatchError; any other failure (network, timeout, server
// error) is a plain error whose outcome is unknown to the caller.
func (a *API) SendVote(ctx context.Context, eventID int, action string) (models.VoteResponse, error) {
	body, err := json.Marshal(models.VoteRequest{
		EventID:  eventID,
		Action:   action,
		DeviceID: a.DeviceID,
	})
	if err != nil {
		return models.VoteResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/api/votes", bytes.NewReader(body))
	if err != nil {
		return models.VoteResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return models.VoteResponse{}, fmt.Errorf("send vote: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var vr models.VoteResponse
		if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
			return models.VoteResponse{}, fmt.Errorf("decode vote response: %w", err)
		}
		return vr, nil

	case http.StatusBadRequest:
		var conflict models.VoteConflictResponse
		if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
			return models.VoteResponse{}, fmt.Errorf("decode conflict response: %w", err)
		}
		if conflict.Error != models.MsgAlreadyParticipating && conflict.Error != models.MsgNotParticipating {
			// A validation rejection, not a state mismatch.
			return models.VoteResponse{}, fmt.Errorf("send vote: rejected by server: %s", conflict.Error)
		}
		return models.VoteResponse{}, &StateMismatchError{
			AlreadyVoted: conflict.AlreadyVoted,
			Votes:        conflict.Votes,
			Message:      conflict.Error,
		}

	default:
		return models.VoteResponse{}, fmt.Errorf("send vote: unexpected status %d", resp.StatusCode)
	}
}
