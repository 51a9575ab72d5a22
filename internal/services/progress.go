package services

import (
	"context"

	"github.com/devikaharshey/pybot-backend/internal/data/repos"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

// ProgressService folds a user's score history into running totals for the
// progress chart.
type ProgressService interface {
	// Aggregate sums correct and incorrect answers across every recorded
	// attempt. A storage failure yields zero totals, not an error.
	Aggregate(ctx context.Context, userID string) (correct int, incorrect int)
}

type progressService struct {
	log    *logger.Logger
	scores repos.ScoreAttemptRepo
}

func NewProgressService(baseLog *logger.Logger, scores repos.ScoreAttemptRepo) ProgressService {
	return &progressService{
		log:    baseLog.With("service", "ProgressService"),
		scores: scores,
	}
}

func (s *progressService) Aggregate(ctx context.Context, userID string) (int, int) {
	attempts, err := s.scores.ListByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Error("Error fetching progress data", "user_id", userID, "error", err)
		return 0, 0
	}
	correct, incorrect := 0, 0
	for _, attempt := range attempts {
		correct += attempt.Score
		incorrect += attempt.Total - attempt.Score
	}
	return correct, incorrect
}
