package vote

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

// ledgerTx fakes the two statements Upsert issues. Methods the ledger
// never calls fall through to the embedded nil interface and panic.
type ledgerTx struct {
	pgx.Tx
	scanErr  error
	existing model.VoteType
	execSQL  []string
}

func (t *ledgerTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return ledgerRow{err: t.scanErr, vote: t.existing}
}

func (t *ledgerTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execSQL = append(t.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

type ledgerRow struct {
	err  error
	vote model.VoteType
}

func (r ledgerRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*model.VoteType)) = r.vote
	return nil
}

func TestDeltaFor(t *testing.T) {
	up := model.VoteTypeUp
	down := model.VoteTypeDown

	testCases := []struct {
		name      string
		existing  *model.VoteType
		requested model.VoteType
		want      model.VoteDelta
	}{
		{"first upvote", nil, up, model.VoteDelta{Upvotes: 1}},
		{"first downvote", nil, down, model.VoteDelta{Downvotes: 1}},
		{"repeat upvote", &up, up, model.VoteDelta{}},
		{"repeat downvote", &down, down, model.VoteDelta{}},
		{"flip up to down", &up, down, model.VoteDelta{Upvotes: -1, Downvotes: 1}},
		{"flip down to up", &down, up, model.VoteDelta{Upvotes: 1, Downvotes: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeltaFor(tc.existing, tc.requested)
			if got != tc.want {
				t.Errorf("DeltaFor(%v, %s) = %+v; want %+v", tc.existing, tc.requested, got, tc.want)
			}
		})
	}
}

func TestDeltaForNeverMovesMoreThanOneVote(t *testing.T) {
	// Whatever the prior state, one vote operation shifts at most one vote
	// per bucket and never changes the total by more than one.
	states := []*model.VoteType{nil}
	up, down := model.VoteTypeUp, model.VoteTypeDown
	states = append(states, &up, &down)

	for _, existing := range states {
		for _, requested := range []model.VoteType{up, down} {
			d := DeltaFor(existing, requested)
			if d.Upvotes < -1 || d.Upvotes > 1 || d.Downvotes < -1 || d.Downvotes > 1 {
				t.Errorf("DeltaFor(%v, %s) = %+v; bucket moved by more than one", existing, requested, d)
			}
			if total := d.Upvotes + d.Downvotes; total < 0 || total > 1 {
				t.Errorf("DeltaFor(%v, %s) changes vote total by %d", existing, requested, total)
			}
		}
	}
}

func TestRepeatVoteIsIdempotent(t *testing.T) {
	up := model.VoteTypeUp
	if d := DeltaFor(&up, up); !d.IsZero() {
		t.Errorf("repeated identical vote produced non-zero delta %+v", d)
	}
}

func TestUpsertTreatsWrappedNoRowsAsFirstVote(t *testing.T) {
	ledger := &Ledger{}
	tx := &ledgerTx{scanErr: fmt.Errorf("loading existing vote: %w", pgx.ErrNoRows)}

	delta, err := ledger.Upsert(context.Background(), tx, uuid.New(), 9, model.VoteTypeUp)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if delta != DeltaFor(nil, model.VoteTypeUp) {
		t.Errorf("delta = %+v; want the first-vote delta", delta)
	}
	if len(tx.execSQL) != 1 || !strings.Contains(tx.execSQL[0], "INSERT INTO votes") {
		t.Errorf("executed %q; want a single vote insert", tx.execSQL)
	}
}

func TestUpsertFlipUpdatesExistingRow(t *testing.T) {
	ledger := &Ledger{}
	existing := model.VoteTypeUp
	tx := &ledgerTx{existing: existing}

	delta, err := ledger.Upsert(context.Background(), tx, uuid.New(), 9, model.VoteTypeDown)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if delta != DeltaFor(&existing, model.VoteTypeDown) {
		t.Errorf("delta = %+v; want the flip delta", delta)
	}
	if len(tx.execSQL) != 1 || !strings.Contains(tx.execSQL[0], "UPDATE votes") {
		t.Errorf("executed %q; want a single vote update", tx.execSQL)
	}
}
