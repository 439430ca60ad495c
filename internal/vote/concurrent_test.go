package vote

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
)

// memVoteStore backs all three storage ports with shared in-memory state.
// One mutex held for the whole transaction stands in for row locking, so
// concurrent CastVote calls serialize the same way the SQL path does.
type memVoteStore struct {
	mu        sync.Mutex
	votes     map[string]model.VoteType
	report    model.Report
	threshold int
}

func newMemVoteStore(reportID int64, threshold int) *memVoteStore {
	return &memVoteStore{
		votes:     make(map[string]model.VoteType),
		report:    model.Report{ID: reportID},
		threshold: threshold,
	}
}

func (s *memVoteStore) RunInTx(ctx context.Context, fn func(pgx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

func (s *memVoteStore) Upsert(_ context.Context, _ pgx.Tx, userID uuid.UUID, reportID int64, requested model.VoteType) (model.VoteDelta, error) {
	key := userID.String() + "/" + strconv.FormatInt(reportID, 10)
	existing, ok := s.votes[key]
	s.votes[key] = requested
	if !ok {
		return DeltaFor(nil, requested), nil
	}
	return DeltaFor(&existing, requested), nil
}

func (s *memVoteStore) ApplyDelta(_ context.Context, _ pgx.Tx, reportID int64, delta model.VoteDelta) (model.Report, error) {
	s.report.Upvotes += delta.Upvotes
	if s.report.Upvotes < 0 {
		s.report.Upvotes = 0
	}
	s.report.Downvotes += delta.Downvotes
	if s.report.Downvotes < 0 {
		s.report.Downvotes = 0
	}
	s.report.Verified = s.report.Upvotes > s.threshold
	return s.report, nil
}

// quietHub absorbs broadcasts; the counter is mutex-guarded so the tests
// stay clean under the race detector.
type quietHub struct {
	mu        sync.Mutex
	published int
}

func (h *quietHub) Publish(topic string, payload []byte) {
	h.mu.Lock()
	h.published++
	h.mu.Unlock()
}

func TestConcurrentUpvotesCountEveryVoter(t *testing.T) {
	const voters = 32

	store := newMemVoteStore(1, 5)
	coord := &Coordinator{store: store, hub: &quietHub{}, ledger: store, counters: store}

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := coord.CastVote(context.Background(), uuid.New(), 1, model.VoteTypeUp)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("CastVote: %v", err)
		}
	}
	if store.report.Upvotes != voters {
		t.Errorf("upvotes = %d; want %d (no lost updates)", store.report.Upvotes, voters)
	}
	if store.report.Downvotes != 0 {
		t.Errorf("downvotes = %d; want 0", store.report.Downvotes)
	}
	if !store.report.Verified {
		t.Error("report not verified after crossing the threshold")
	}
	if len(store.votes) != voters {
		t.Errorf("ledger holds %d votes; want one per (user, report) pair", len(store.votes))
	}
}

func TestConcurrentRevotesKeepOneVotePerUser(t *testing.T) {
	const voters = 16

	store := newMemVoteStore(2, 5)
	coord := &Coordinator{store: store, hub: &quietHub{}, ledger: store, counters: store}

	// Every voter upvotes, repeats the upvote, then flips to a downvote.
	// Only the last vote of each user may survive.
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := uuid.New()
			for _, vt := range []model.VoteType{model.VoteTypeUp, model.VoteTypeUp, model.VoteTypeDown} {
				if _, err := coord.CastVote(context.Background(), userID, 2, vt); err != nil {
					t.Errorf("CastVote: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if store.report.Upvotes != 0 {
		t.Errorf("upvotes = %d; want 0 after every voter flipped", store.report.Upvotes)
	}
	if store.report.Downvotes != voters {
		t.Errorf("downvotes = %d; want %d", store.report.Downvotes, voters)
	}
	if store.report.Verified {
		t.Error("report verified with zero upvotes")
	}
	if len(store.votes) != voters {
		t.Errorf("ledger holds %d votes; want one per (user, report) pair", len(store.votes))
	}
	for key, vt := range store.votes {
		if vt != model.VoteTypeDown {
			t.Errorf("vote %s = %s; want %s", key, vt, model.VoteTypeDown)
		}
	}
}
