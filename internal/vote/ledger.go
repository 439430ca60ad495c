package vote

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

// Postgres error codes the coordinator treats as retryable contention.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrSerializationFail   = "40001"
)

// Ledger owns the "at most one vote per (user, report)" invariant. All of
// its work happens inside the caller's transaction so a failure later in
// the request leaves no partial vote row behind.
type Ledger struct{}

// Upsert records the user's requested vote on a report and returns the
// counter delta it implies. The vote row is locked for the rest of the
// transaction, so concurrent re-votes on the same (user, report) pair
// serialize here. Two concurrent first votes race past the empty select;
// the unique constraint rejects the loser, which surfaces as a retryable
// error to the coordinator.
func (l *Ledger) Upsert(ctx context.Context, tx pgx.Tx, userID uuid.UUID, reportID int64, requested model.VoteType) (model.VoteDelta, error) {
	var existing model.VoteType
	err := tx.QueryRow(ctx,
		`SELECT vote_type FROM votes WHERE user_id = $1 AND report_id = $2 FOR UPDATE`,
		userID, reportID,
	).Scan(&existing)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`INSERT INTO votes (user_id, report_id, vote_type) VALUES ($1, $2, $3)`,
			userID, reportID, requested,
		)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgErrForeignKeyViolation {
				return model.VoteDelta{}, ErrReportNotFound
			}
			return model.VoteDelta{}, errors.Wrap(err, "inserting vote")
		}
		return DeltaFor(nil, requested), nil
	}
	if err != nil {
		return model.VoteDelta{}, errors.Wrap(err, "loading existing vote")
	}

	if existing == requested {
		// Repeated identical vote: nothing to write, nothing to count.
		return model.VoteDelta{}, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE votes SET vote_type = $3 WHERE user_id = $1 AND report_id = $2`,
		userID, reportID, requested,
	)
	if err != nil {
		return model.VoteDelta{}, errors.Wrap(err, "switching vote type")
	}
	return DeltaFor(&existing, requested), nil
}

// DeltaFor is the three-case vote decision table: first vote adds one to
// the requested bucket, a repeat changes nothing, a flip moves one vote
// from the old bucket to the new one.
func DeltaFor(existing *model.VoteType, requested model.VoteType) model.VoteDelta {
	if existing == nil {
		if requested == model.VoteTypeUp {
			return model.VoteDelta{Upvotes: 1}
		}
		return model.VoteDelta{Downvotes: 1}
	}

	if *existing == requested {
		return model.VoteDelta{}
	}

	if requested == model.VoteTypeUp {
		return model.VoteDelta{Upvotes: 1, Downvotes: -1}
	}
	return model.VoteDelta{Upvotes: -1, Downvotes: 1}
}
