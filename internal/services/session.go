package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/data/repos"
	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/apierr"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

// SessionData is one loaded session as handed to callers: display name plus
// the decoded transcript.
type SessionData struct {
	Name  string            `json:"name"`
	Turns []domain.ChatTurn `json:"chat"`
}

// SessionService owns the persistence semantics for chat sessions. Store
// failures on the read and write paths are collapsed to safe defaults and
// logged; callers cannot distinguish "no sessions" from "load failed".
type SessionService interface {
	// LoadAll returns every session, keyed by session id, optionally
	// filtered to one owner. Never fails: adapter errors yield an empty map.
	LoadAll(ctx context.Context, userID string) map[string]SessionData

	// Save updates an existing session document. Persistence failure is
	// logged, not returned.
	Save(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn)

	// Create persists a new session document under sessionID.
	Create(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn)

	// Rename updates only the display name. Unknown ids are a not-found
	// condition and perform no write.
	Rename(ctx context.Context, sessionID, newName string) error

	// Delete removes the session. When userID is non-empty it also wipes
	// that user's quiz record and score history, each attempt independent
	// and best-effort.
	Delete(ctx context.Context, sessionID, userID string)

	// AppendTranscript appends one user-authored turn (a voice transcript)
	// to the session, creating the session if needed.
	AppendTranscript(ctx context.Context, sessionID, userID, transcript string)
}

type sessionService struct {
	db       *gorm.DB
	log      *logger.Logger
	sessions repos.SessionRepo
	quizzes  repos.QuizRecordRepo
	scores   repos.ScoreAttemptRepo
}

func NewSessionService(db *gorm.DB, baseLog *logger.Logger, sessions repos.SessionRepo, quizzes repos.QuizRecordRepo, scores repos.ScoreAttemptRepo) SessionService {
	return &sessionService{
		db:       db,
		log:      baseLog.With("service", "SessionService"),
		sessions: sessions,
		quizzes:  quizzes,
		scores:   scores,
	}
}

// NewSessionID mints an opaque session identifier.
func NewSessionID() string { return uuid.NewString() }

func (s *sessionService) LoadAll(ctx context.Context, userID string) map[string]SessionData {
	rows, err := s.sessions.List(ctx, nil, userID)
	if err != nil {
		s.log.Error("Error loading chats", "error", err, "user_id", userID)
		return map[string]SessionData{}
	}

	out := make(map[string]SessionData, len(rows))
	for _, row := range rows {
		turns, err := domain.DecodeTurns(row.Turns)
		if err != nil {
			s.log.Warn("Skipping session with unreadable transcript", "session_id", row.ID, "error", err)
			continue
		}
		out[row.ID] = SessionData{Name: row.Name, Turns: turns}
	}
	return out
}

func (s *sessionService) Save(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn) {
	encoded, err := domain.EncodeTurns(turns)
	if err != nil {
		s.log.Error("Error encoding transcript", "session_id", sessionID, "error", err)
		return
	}
	session := &domain.ChatSession{ID: sessionID, UserID: userID, Name: name, Turns: encoded}
	if err := s.sessions.Update(ctx, nil, session); err != nil {
		s.log.Error("Error saving chat", "session_id", sessionID, "error", err)
	}
}

func (s *sessionService) Create(ctx context.Context, sessionID, userID, name string, turns []domain.ChatTurn) {
	encoded, err := domain.EncodeTurns(turns)
	if err != nil {
		s.log.Error("Error encoding transcript", "session_id", sessionID, "error", err)
		return
	}
	session := &domain.ChatSession{ID: sessionID, UserID: userID, Name: name, Turns: encoded}
	if err := s.sessions.Create(ctx, nil, session); err != nil {
		s.log.Error("Error creating chat", "session_id", sessionID, "error", err)
	}
}

func (s *sessionService) Rename(ctx context.Context, sessionID, newName string) error {
	session, err := s.sessions.GetByID(ctx, nil, sessionID)
	if err != nil {
		s.log.Error("Error loading chat for rename", "session_id", sessionID, "error", err)
		return apierr.New(http.StatusNotFound, "session_not_found", fmt.Errorf("session not found"))
	}
	if session == nil {
		return apierr.New(http.StatusNotFound, "session_not_found", fmt.Errorf("session not found"))
	}
	session.Name = newName
	if err := s.sessions.Update(ctx, nil, session); err != nil {
		s.log.Error("Error saving renamed chat", "session_id", sessionID, "error", err)
	}
	return nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID, userID string) {
	if err := s.sessions.DeleteByID(ctx, nil, sessionID); err != nil {
		s.log.Error("Error deleting chat", "session_id", sessionID, "error", err)
	}

	if userID == "" {
		s.log.Warn("No user id supplied; skipping quiz and score cleanup", "session_id", sessionID)
		return
	}

	// Best effort: each collection wipe stands alone.
	if err := s.quizzes.DeleteByUserID(ctx, nil, userID); err != nil {
		s.log.Error("Failed to delete quiz record", "user_id", userID, "error", err)
	}
	if err := s.scores.DeleteByUserID(ctx, nil, userID); err != nil {
		s.log.Error("Failed to delete score history", "user_id", userID, "error", err)
	}
}

func (s *sessionService) AppendTranscript(ctx context.Context, sessionID, userID, transcript string) {
	chats := s.LoadAll(ctx, userID)

	existing, ok := chats[sessionID]
	turns := existing.Turns
	turns = append(turns, domain.ChatTurn{Sender: "user", Text: transcript})

	if ok {
		s.Save(ctx, sessionID, userID, existing.Name, turns)
	} else {
		s.Create(ctx, sessionID, userID, "", turns)
	}
}
