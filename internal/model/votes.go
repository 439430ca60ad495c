package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteTypeUp   VoteType = "UPVOTE"
	VoteTypeDown VoteType = "DOWNVOTE"
)

// Valid reports whether the vote type is one of the two known buckets.
func (t VoteType) Valid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// Vote is a single user's standing vote on a report. At most one row exists
// per (user, report) pair; a re-vote flips vote_type in place.
type Vote struct {
	ID        int64     `json:"id"`
	ReportID  int64     `json:"report_id"`
	UserID    uuid.UUID `json:"user_id"`
	VoteType  VoteType  `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteDelta is the signed counter adjustment produced by one vote operation.
type VoteDelta struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// IsZero reports whether applying the delta would change nothing.
func (d VoteDelta) IsZero() bool {
	return d.Upvotes == 0 && d.Downvotes == 0
}

type VoteRequest struct {
	VoteType VoteType `json:"vote_type" validate:"required,oneof=UPVOTE DOWNVOTE"`
}
