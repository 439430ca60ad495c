package vote

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

// DefaultVerificationThreshold matches the seed-data policy: a report is
// verified once its upvotes exceed this count.
const DefaultVerificationThreshold = 5

// CounterStore applies vote deltas to a report's counters. The single
// UPDATE reads and writes the counters in one statement under the row
// lock, so concurrent deltas on the same report serialize instead of
// losing updates. Counters never drop below zero.
type CounterStore struct {
	Threshold int
}

func NewCounterStore(threshold int) *CounterStore {
	if threshold <= 0 {
		threshold = DefaultVerificationThreshold
	}
	return &CounterStore{Threshold: threshold}
}

// ApplyDelta adjusts the counters, recomputes the verified flag from the
// new upvote count, and returns the post-mutation snapshot. The flag is
// recomputed on every change, not just at creation, so it can also drop
// back below the threshold after a downvote flip.
func (s *CounterStore) ApplyDelta(ctx context.Context, tx pgx.Tx, reportID int64, delta model.VoteDelta) (model.Report, error) {
	query := `
        UPDATE reports
        SET
            upvotes = GREATEST(0, upvotes + $2),
            downvotes = GREATEST(0, downvotes + $3),
            verified = GREATEST(0, upvotes + $2) > $4,
            updated_at = NOW()
        WHERE id = $1
        RETURNING id, user_id, title, description, category, severity,
            ST_X(position) as longitude, ST_Y(position) as latitude,
            address, image_url, verified, active, upvotes, downvotes,
            created_at, updated_at
    `
	var report model.Report
	err := tx.QueryRow(ctx, query, reportID, delta.Upvotes, delta.Downvotes, s.Threshold).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Category, &report.Severity, &report.Longitude, &report.Latitude,
		&report.Address, &report.ImageURL, &report.Verified, &report.Active,
		&report.Upvotes, &report.Downvotes, &report.CreatedAt, &report.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return model.Report{}, ErrReportNotFound
	}
	if err != nil {
		return model.Report{}, errors.Wrap(err, "applying vote delta")
	}
	return report, nil
}
