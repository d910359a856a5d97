package models

import "time"

// Vote actions accepted by POST /api/votes
const (
	ActionUpvote   = "upvote"
	ActionDownvote = "downvote"
)

// Conflict messages carried in VoteConflictResponse.Error. Part of
// the wire contract: the client distinguishes a state mismatch from a
// plain validation rejection by these values.
const (
	MsgAlreadyParticipating = "Already participating"
	MsgNotParticipating     = "Not participating"
)

// VoteRecord is the durable fact that one device joined one event.
// Records are created on the first vote and deleted on retraction;
// they are never updated in place.
type VoteRecord struct {
	EventID    int       `json:"event_id"`
	DeviceID   string    `json:"device_id"`
	EventTitle string    `json:"event_title,omitempty"`
	IPHash     string    `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"created_at"`
}

// EventStat is the aggregate derived from live VoteRecords.
// JoinCount equals the number of live records and never goes negative.
type EventStat struct {
	EventID    int    `json:"event_id"`
	EventTitle string `json:"event_title,omitempty"`
	JoinCount  int    `json:"join_count"`
}

// Event is a catalog entry from the park's event schedule.
type Event struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
}

// Request types

type VoteRequest struct {
	EventID  int    `json:"eventId"`
	Action   string `json:"action"`
	DeviceID string `json:"deviceId"`
}

// Response types

// StateResponse carries all aggregate counts plus, when the request
// named a device, that device's vote set. UserVotes is nil only on
// the anonymous path; a device with no votes gets an explicit empty
// list.
type StateResponse struct {
	Votes     map[int]int `json:"votes"`
	UserVotes []int       `json:"userVotes"`
}

type VoteResponse struct {
	EventID      int  `json:"eventId"`
	Votes        int  `json:"votes"`
	AlreadyVoted bool `json:"alreadyVoted"`
}

type VoteConflictResponse struct {
	Error        string `json:"error"`
	AlreadyVoted bool   `json:"alreadyVoted"`
	Votes        int    `json:"votes"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
