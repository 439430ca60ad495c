package vote

import "errors"

var (
	// ErrReportNotFound means the referenced report does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidVoteType means the requested type is not UPVOTE or DOWNVOTE.
	ErrInvalidVoteType = errors.New("invalid vote type")
	// ErrContention means the vote kept colliding with concurrent writes and
	// gave up after the bounded retries; the client may safely retry.
	ErrContention = errors.New("vote contention, try again")
)
