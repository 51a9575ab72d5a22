package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/devikaharshey/pybot-backend/internal/data/repos"
	"github.com/devikaharshey/pybot-backend/internal/data/repos/testutil"
	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/apierr"
)

func newSessionFixture(tb testing.TB) (SessionService, repos.QuizRecordRepo, repos.ScoreAttemptRepo) {
	db := testutil.DB(tb)
	log := testutil.Logger(tb)
	sessions := repos.NewSessionRepo(db, log)
	quizzes := repos.NewQuizRecordRepo(db, log)
	scores := repos.NewScoreAttemptRepo(db, log)
	svc := NewSessionService(db, log, sessions, quizzes, scores)
	return svc, quizzes, scores
}

func TestSessionRoundTrip(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	turns := []domain.ChatTurn{
		{Sender: "user", Text: "hi"},
		{Sender: "bot", Text: "Hi there!"},
	}
	svc.Create(ctx, "sess-1", "user-1", "Greetings", turns)

	chats := svc.LoadAll(ctx, "user-1")
	got, ok := chats["sess-1"]
	if !ok {
		t.Fatalf("session missing after create: %v", chats)
	}
	if got.Name != "Greetings" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if len(got.Turns) != 2 || got.Turns[0].Text != "hi" || got.Turns[1].Sender != "bot" {
		t.Fatalf("transcript did not round-trip: %+v", got.Turns)
	}
}

func TestLoadAllFiltersByOwner(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	svc.Create(ctx, "sess-1", "user-1", "", []domain.ChatTurn{{Sender: "user", Text: "mine"}})
	svc.Create(ctx, "sess-2", "user-2", "", []domain.ChatTurn{{Sender: "user", Text: "theirs"}})

	chats := svc.LoadAll(ctx, "user-1")
	if len(chats) != 1 {
		t.Fatalf("expected 1 session for user-1, got %d", len(chats))
	}
	if _, ok := chats["sess-2"]; ok {
		t.Fatal("another user's session leaked")
	}
}

func TestRenameUnknownSessionIsNotFound(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	err := svc.Rename(context.Background(), "ghost", "New Name")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestRenameKeepsTranscript(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	ctx := context.Background()
	svc.Create(ctx, "sess-1", "user-1", "Old", []domain.ChatTurn{{Sender: "user", Text: "hi"}})

	if err := svc.Rename(ctx, "sess-1", "New"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	got := svc.LoadAll(ctx, "user-1")["sess-1"]
	if got.Name != "New" {
		t.Fatalf("rename not applied: %q", got.Name)
	}
	if len(got.Turns) != 1 {
		t.Fatalf("rename clobbered the transcript: %+v", got.Turns)
	}
}

func TestDeleteCascadesToQuizAndScores(t *testing.T) {
	svc, quizzes, scores := newSessionFixture(t)
	ctx := context.Background()

	svc.Create(ctx, "sess-1", "user-1", "", []domain.ChatTurn{{Sender: "user", Text: "hi"}})
	if err := quizzes.Create(ctx, nil, &domain.QuizRecord{
		ID:        uuid.New(),
		UserID:    "user-1",
		Questions: datatypes.JSON(`[]`),
	}); err != nil {
		t.Fatalf("quiz Create: %v", err)
	}
	if err := scores.Create(ctx, nil, &domain.ScoreAttempt{ID: uuid.New(), UserID: "user-1", Score: 3, Total: 5}); err != nil {
		t.Fatalf("score Create: %v", err)
	}

	svc.Delete(ctx, "sess-1", "user-1")

	if chats := svc.LoadAll(ctx, "user-1"); len(chats) != 0 {
		t.Fatalf("session survived delete: %v", chats)
	}
	if record, _ := quizzes.GetByUserID(ctx, nil, "user-1"); record != nil {
		t.Fatal("quiz record survived delete")
	}
	if attempts, _ := scores.ListByUserID(ctx, nil, "user-1"); len(attempts) != 0 {
		t.Fatal("score history survived delete")
	}
}

func TestDeleteWithoutUserLeavesAssessmentState(t *testing.T) {
	svc, quizzes, _ := newSessionFixture(t)
	ctx := context.Background()

	svc.Create(ctx, "sess-1", "user-1", "", []domain.ChatTurn{{Sender: "user", Text: "hi"}})
	if err := quizzes.Create(ctx, nil, &domain.QuizRecord{
		ID:        uuid.New(),
		UserID:    "user-1",
		Questions: datatypes.JSON(`[]`),
	}); err != nil {
		t.Fatalf("quiz Create: %v", err)
	}

	svc.Delete(ctx, "sess-1", "")

	if record, _ := quizzes.GetByUserID(ctx, nil, "user-1"); record == nil {
		t.Fatal("quiz record must survive when no user id is supplied")
	}
}

func TestAppendTranscriptCreatesThenAppends(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	svc.AppendTranscript(ctx, "sess-1", "user-1", "first recording")
	svc.AppendTranscript(ctx, "sess-1", "user-1", "second recording")

	got := svc.LoadAll(ctx, "user-1")["sess-1"]
	if len(got.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %+v", got.Turns)
	}
	if got.Turns[0].Sender != "user" || got.Turns[1].Text != "second recording" {
		t.Fatalf("unexpected transcript: %+v", got.Turns)
	}
}
