package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/data/repos"
	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/apierr"
	"github.com/devikaharshey/pybot-backend/internal/platform/gemini"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
	"github.com/devikaharshey/pybot-backend/internal/quizformat"
)

// quizContextTurns caps how much recent chat history seeds a quiz.
const quizContextTurns = 20

const quizPromptTemplate = `
Generate a 5-question multiple choice quiz based on the user's recent Python and DSA conversations.

"""%s"""

Each question must follow this exact format:

1. Question text goes here
A) Option A
B) Option B
C) Option C
D) Option D
**Correct Answer: C**

Repeat for 5 questions.
Avoid markdown headings or formatting. Use plain text only.
`

// QuizService generates quizzes from chat history, keeps the single live
// answer key per user, and grades submissions against it.
type QuizService interface {
	// Generate builds a fresh quiz for the user and overwrites any
	// previous quiz record. At most one record per user ever exists.
	Generate(ctx context.Context, userID string) ([]quizformat.Question, error)

	// Grade scores submitted answers against the user's live quiz and
	// appends a score attempt. Answers are keyed by question index; both
	// "0" and loosely formatted numeric keys are accepted.
	Grade(ctx context.Context, userID string, answers map[string]string) (score int, total int, err error)
}

type quizService struct {
	db       *gorm.DB
	log      *logger.Logger
	sessions SessionService
	llm      gemini.Client
	quizzes  repos.QuizRecordRepo
	scores   repos.ScoreAttemptRepo
}

func NewQuizService(db *gorm.DB, baseLog *logger.Logger, sessions SessionService, llm gemini.Client, quizzes repos.QuizRecordRepo, scores repos.ScoreAttemptRepo) QuizService {
	return &quizService{
		db:       db,
		log:      baseLog.With("service", "QuizService"),
		sessions: sessions,
		llm:      llm,
		quizzes:  quizzes,
		scores:   scores,
	}
}

func (s *quizService) Generate(ctx context.Context, userID string) ([]quizformat.Question, error) {
	chats := s.sessions.LoadAll(ctx, userID)

	var userMessages []string
	for _, chat := range chats {
		for _, turn := range chat.Turns {
			if turn.Sender == "user" {
				userMessages = append(userMessages, turn.Text)
			}
		}
	}
	if len(userMessages) > quizContextTurns {
		userMessages = userMessages[len(userMessages)-quizContextTurns:]
	}
	contextText := strings.Join(userMessages, "\n")

	raw, err := s.llm.GenerateText(ctx, fmt.Sprintf(quizPromptTemplate, contextText))
	if err != nil {
		s.log.Error("Quiz generation failed", "user_id", userID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "quiz_generation_failed", err)
	}

	questions, skipped := quizformat.Parse(raw)
	for _, block := range skipped {
		s.log.Debug("Skipped quiz block", "reason", block.Reason)
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "quiz_save_failed", err)
	}
	if err := s.upsert(ctx, userID, datatypes.JSON(encoded)); err != nil {
		s.log.Error("Error saving quiz", "user_id", userID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "quiz_save_failed", err)
	}
	return questions, nil
}

// upsert keeps at most one quiz record per user: overwrite in place when a
// record exists, create otherwise.
func (s *quizService) upsert(ctx context.Context, userID string, questions datatypes.JSON) error {
	existing, err := s.quizzes.GetByUserID(ctx, nil, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.quizzes.UpdateQuestions(ctx, nil, existing, questions)
	}
	record := &domain.QuizRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Questions: questions,
	}
	return s.quizzes.Create(ctx, nil, record)
}

func (s *quizService) Grade(ctx context.Context, userID string, answers map[string]string) (int, int, error) {
	record, err := s.quizzes.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Error("Error loading quiz", "user_id", userID, "error", err)
		return 0, 0, apierr.New(http.StatusNotFound, "quiz_not_found", fmt.Errorf("quiz not found"))
	}
	if record == nil {
		return 0, 0, apierr.New(http.StatusNotFound, "quiz_not_found", fmt.Errorf("quiz not found"))
	}

	var questions []quizformat.Question
	if err := json.Unmarshal(record.Questions, &questions); err != nil {
		s.log.Error("Error decoding quiz", "user_id", userID, "error", err)
		return 0, 0, apierr.New(http.StatusNotFound, "quiz_not_found", err)
	}

	score := 0
	for i, q := range questions {
		submitted := lookupAnswer(answers, i)
		if submitted == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.Correct)) {
			score++
		}
	}

	// The attempt is recorded no matter what; history is append-only.
	attempt := &domain.ScoreAttempt{
		ID:     uuid.New(),
		UserID: userID,
		Score:  score,
		Total:  len(questions),
	}
	if err := s.scores.Create(ctx, nil, attempt); err != nil {
		s.log.Error("Error saving score to history", "user_id", userID, "error", err)
	}

	return score, len(questions), nil
}

// lookupAnswer finds the submitted answer for a question index. Callers
// serialize answer keys inconsistently ("3" vs 3 vs " 3"), so an exact
// decimal match is tried first, then any key whose numeric value matches.
func lookupAnswer(answers map[string]string, index int) string {
	if v, ok := answers[strconv.Itoa(index)]; ok {
		return v
	}
	for key, v := range answers {
		if n, err := strconv.Atoi(strings.TrimSpace(key)); err == nil && n == index {
			return v
		}
	}
	return ""
}
