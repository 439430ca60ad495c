package vote

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/raastabuzz/raastabuzz-api/internal/db"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util/websockets"
)

// Bounded retries for storage-level contention before giving up.
const maxCastAttempts = 3

type txRunner interface {
	RunInTx(ctx context.Context, fn func(pgx.Tx) error) error
}

type voteLedger interface {
	Upsert(ctx context.Context, tx pgx.Tx, userID uuid.UUID, reportID int64, requested model.VoteType) (model.VoteDelta, error)
}

type counterStore interface {
	ApplyDelta(ctx context.Context, tx pgx.Tx, reportID int64, delta model.VoteDelta) (model.Report, error)
}

type publisher interface {
	Publish(topic string, payload []byte)
}

// Coordinator runs one vote request end to end: ledger upsert and counter
// update in a single transaction, then a broadcast of the committed
// snapshot. It is the only entry point the REST layer calls for voting.
type Coordinator struct {
	store    txRunner
	hub      publisher
	ledger   voteLedger
	counters counterStore
}

func NewCoordinator(database *db.DB, hub *websockets.Hub, threshold int) *Coordinator {
	return &Coordinator{
		store:    database,
		hub:      hub,
		ledger:   &Ledger{},
		counters: NewCounterStore(threshold),
	}
}

// CastVote records the user's vote and returns the post-mutation report.
// The returned snapshot is byte-for-byte the one broadcast to subscribers.
// Nothing is broadcast when any step fails: the transaction rolls back and
// counters stay untouched.
func (c *Coordinator) CastVote(ctx context.Context, userID uuid.UUID, reportID int64, voteType model.VoteType) (model.Report, error) {
	if !voteType.Valid() {
		return model.Report{}, ErrInvalidVoteType
	}

	var snapshot model.Report
	var err error
	for attempt := 0; attempt < maxCastAttempts; attempt++ {
		err = c.store.RunInTx(ctx, func(tx pgx.Tx) error {
			delta, upsertErr := c.ledger.Upsert(ctx, tx, userID, reportID, voteType)
			if upsertErr != nil {
				return upsertErr
			}
			snapshot, upsertErr = c.counters.ApplyDelta(ctx, tx, reportID, delta)
			return upsertErr
		})
		if err == nil {
			break
		}
		if !retryable(err) {
			return model.Report{}, err
		}
		log.Printf("vote contention on report %d (attempt %d): %v", reportID, attempt+1, err)
	}
	if err != nil {
		return model.Report{}, ErrContention
	}

	c.PublishReport(snapshot)
	return snapshot, nil
}

// PublishReport pushes a report snapshot to the global feed and the
// report's own topic. Create, update and deactivate flows reuse it so the
// live feed stays consistent with non-vote mutations too. Failures here
// never affect the already-committed mutation.
func (c *Coordinator) PublishReport(report model.Report) {
	payload, err := json.Marshal(websockets.Envelope{
		Type: websockets.MsgTypeReportUpdate,
		Data: report,
	})
	if err != nil {
		log.Println("failed to marshal report broadcast:", err)
		return
	}
	c.hub.Publish(websockets.TopicReports, payload)
	c.hub.Publish(websockets.ReportTopic(report.ID), payload)
}

// PublishComment pushes a new comment to the report's own topic. Clients
// watching a single report receive its discussion alongside counter
// changes; the global feed stays report snapshots only.
func (c *Coordinator) PublishComment(comment model.Comment) {
	payload, err := json.Marshal(websockets.Envelope{
		Type: websockets.MsgTypeCommentUpdate,
		Data: comment,
	})
	if err != nil {
		log.Println("failed to marshal comment broadcast:", err)
		return
	}
	c.hub.Publish(websockets.ReportTopic(comment.ReportID), payload)
}

// retryable reports whether the failure is transient write contention:
// a duplicate first vote racing the unique constraint, or a
// serialization failure.
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation || pgErr.Code == pgErrSerializationFail
	}
	return false
}
