package vote

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/raastabuzz/raastabuzz-api/internal/model"
	"github.com/raastabuzz/raastabuzz-api/util/websockets"
)

type stubStore struct {
	calls int
}

func (s *stubStore) RunInTx(ctx context.Context, fn func(pgx.Tx) error) error {
	s.calls++
	return fn(nil)
}

type stubLedger struct {
	delta model.VoteDelta
	errs  []error
	calls int
}

func (l *stubLedger) Upsert(ctx context.Context, tx pgx.Tx, userID uuid.UUID, reportID int64, requested model.VoteType) (model.VoteDelta, error) {
	l.calls++
	if len(l.errs) > 0 {
		err := l.errs[0]
		l.errs = l.errs[1:]
		if err != nil {
			return model.VoteDelta{}, err
		}
	}
	return l.delta, nil
}

type stubCounters struct {
	report model.Report
	err    error
	calls  int
}

func (c *stubCounters) ApplyDelta(ctx context.Context, tx pgx.Tx, reportID int64, delta model.VoteDelta) (model.Report, error) {
	c.calls++
	if c.err != nil {
		return model.Report{}, c.err
	}
	return c.report, nil
}

type capturedMessage struct {
	topic   string
	payload []byte
}

type stubHub struct {
	messages []capturedMessage
}

func (h *stubHub) Publish(topic string, payload []byte) {
	h.messages = append(h.messages, capturedMessage{topic: topic, payload: payload})
}

func newTestCoordinator(ledger *stubLedger, counters *stubCounters, hub *stubHub) (*Coordinator, *stubStore) {
	store := &stubStore{}
	return &Coordinator{store: store, hub: hub, ledger: ledger, counters: counters}, store
}

func TestCastVoteBroadcastsCommittedSnapshot(t *testing.T) {
	report := model.Report{ID: 7, Upvotes: 6, Downvotes: 1, Verified: true}
	ledger := &stubLedger{delta: model.VoteDelta{Upvotes: 1}}
	counters := &stubCounters{report: report}
	hub := &stubHub{}
	coord, _ := newTestCoordinator(ledger, counters, hub)

	got, err := coord.CastVote(context.Background(), uuid.New(), 7, model.VoteTypeUp)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if got.Upvotes != 6 || got.Downvotes != 1 || !got.Verified {
		t.Errorf("snapshot = %+v; want the counter store result", got)
	}

	if len(hub.messages) != 2 {
		t.Fatalf("published %d messages; want 2 (global feed and report topic)", len(hub.messages))
	}
	wantTopics := map[string]bool{websockets.TopicReports: true, websockets.ReportTopic(7): true}
	for _, msg := range hub.messages {
		if !wantTopics[msg.topic] {
			t.Errorf("published to unexpected topic %q", msg.topic)
		}
		var env struct {
			Type string       `json:"type"`
			Data model.Report `json:"data"`
		}
		if err := json.Unmarshal(msg.payload, &env); err != nil {
			t.Fatalf("unmarshal broadcast payload: %v", err)
		}
		if env.Type != websockets.MsgTypeReportUpdate {
			t.Errorf("broadcast type = %q; want %q", env.Type, websockets.MsgTypeReportUpdate)
		}
		if env.Data.ID != got.ID || env.Data.Upvotes != got.Upvotes || env.Data.Downvotes != got.Downvotes || env.Data.Verified != got.Verified {
			t.Errorf("broadcast snapshot %+v differs from returned snapshot %+v", env.Data, got)
		}
	}
}

func TestCastVoteInvalidTypeTouchesNothing(t *testing.T) {
	ledger := &stubLedger{}
	counters := &stubCounters{}
	hub := &stubHub{}
	coord, store := newTestCoordinator(ledger, counters, hub)

	_, err := coord.CastVote(context.Background(), uuid.New(), 1, model.VoteType("SIDEWAYS"))
	if !errors.Is(err, ErrInvalidVoteType) {
		t.Fatalf("err = %v; want ErrInvalidVoteType", err)
	}
	if store.calls != 0 || ledger.calls != 0 || counters.calls != 0 {
		t.Error("invalid vote type reached storage")
	}
	if len(hub.messages) != 0 {
		t.Error("invalid vote type was broadcast")
	}
}

func TestCastVoteFailureDoesNotBroadcast(t *testing.T) {
	ledger := &stubLedger{errs: []error{ErrReportNotFound}}
	counters := &stubCounters{}
	hub := &stubHub{}
	coord, _ := newTestCoordinator(ledger, counters, hub)

	_, err := coord.CastVote(context.Background(), uuid.New(), 99, model.VoteTypeUp)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("err = %v; want ErrReportNotFound", err)
	}
	if counters.calls != 0 {
		t.Error("counters were touched after ledger failure")
	}
	if len(hub.messages) != 0 {
		t.Error("failed vote was broadcast")
	}
}

func TestCastVoteCounterFailureDoesNotBroadcast(t *testing.T) {
	ledger := &stubLedger{delta: model.VoteDelta{Upvotes: 1}}
	counters := &stubCounters{err: ErrReportNotFound}
	hub := &stubHub{}
	coord, _ := newTestCoordinator(ledger, counters, hub)

	_, err := coord.CastVote(context.Background(), uuid.New(), 99, model.VoteTypeUp)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("err = %v; want ErrReportNotFound", err)
	}
	if len(hub.messages) != 0 {
		t.Error("failed vote was broadcast")
	}
}

func TestCastVoteRetriesOnUniqueViolation(t *testing.T) {
	conflict := &pgconn.PgError{Code: pgErrUniqueViolation}
	ledger := &stubLedger{errs: []error{conflict, nil}, delta: model.VoteDelta{Upvotes: 1}}
	counters := &stubCounters{report: model.Report{ID: 3, Upvotes: 1}}
	hub := &stubHub{}
	coord, store := newTestCoordinator(ledger, counters, hub)

	got, err := coord.CastVote(context.Background(), uuid.New(), 3, model.VoteTypeUp)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if store.calls != 2 {
		t.Errorf("store.calls = %d; want 2 (failed attempt then retry)", store.calls)
	}
	if got.Upvotes != 1 {
		t.Errorf("snapshot = %+v; want the retry's result", got)
	}
	if len(hub.messages) != 2 {
		t.Errorf("published %d messages; want exactly one broadcast per topic", len(hub.messages))
	}
}

func TestCastVoteGivesUpAfterBoundedRetries(t *testing.T) {
	conflict := &pgconn.PgError{Code: pgErrSerializationFail}
	ledger := &stubLedger{errs: []error{conflict, conflict, conflict}}
	hub := &stubHub{}
	coord, store := newTestCoordinator(ledger, &stubCounters{}, hub)

	_, err := coord.CastVote(context.Background(), uuid.New(), 3, model.VoteTypeDown)
	if !errors.Is(err, ErrContention) {
		t.Fatalf("err = %v; want ErrContention", err)
	}
	if store.calls != maxCastAttempts {
		t.Errorf("store.calls = %d; want %d", store.calls, maxCastAttempts)
	}
	if len(hub.messages) != 0 {
		t.Error("exhausted retries still broadcast")
	}
}

func TestPublishCommentTargetsReportTopic(t *testing.T) {
	hub := &stubHub{}
	coord, _ := newTestCoordinator(&stubLedger{}, &stubCounters{}, hub)

	comment := model.Comment{ID: 11, ReportID: 7, UserID: uuid.New(), Comment: "still flooded near the bridge"}
	coord.PublishComment(comment)

	if len(hub.messages) != 1 {
		t.Fatalf("published %d messages; want 1 (report topic only)", len(hub.messages))
	}
	msg := hub.messages[0]
	if msg.topic != websockets.ReportTopic(7) {
		t.Errorf("published to %q; want %q", msg.topic, websockets.ReportTopic(7))
	}

	var env struct {
		Type string        `json:"type"`
		Data model.Comment `json:"data"`
	}
	if err := json.Unmarshal(msg.payload, &env); err != nil {
		t.Fatalf("unmarshal broadcast payload: %v", err)
	}
	if env.Type != websockets.MsgTypeCommentUpdate {
		t.Errorf("broadcast type = %q; want %q", env.Type, websockets.MsgTypeCommentUpdate)
	}
	if env.Data.ID != comment.ID || env.Data.ReportID != comment.ReportID || env.Data.Comment != comment.Comment {
		t.Errorf("broadcast comment %+v differs from saved comment %+v", env.Data, comment)
	}
}

func TestCastVoteRepeatVoteStillBroadcasts(t *testing.T) {
	// A no-op re-vote commits fine and subscribers still receive the
	// current snapshot.
	ledger := &stubLedger{delta: model.VoteDelta{}}
	counters := &stubCounters{report: model.Report{ID: 5, Upvotes: 2}}
	hub := &stubHub{}
	coord, _ := newTestCoordinator(ledger, counters, hub)

	got, err := coord.CastVote(context.Background(), uuid.New(), 5, model.VoteTypeUp)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if got.Upvotes != 2 {
		t.Errorf("snapshot = %+v", got)
	}
	if len(hub.messages) != 2 {
		t.Errorf("published %d messages; want 2", len(hub.messages))
	}
}
