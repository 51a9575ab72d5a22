package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

type ScoreAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *domain.ScoreAttempt) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.ScoreAttempt, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
}

type scoreAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreAttemptRepo(db *gorm.DB, baseLog *logger.Logger) ScoreAttemptRepo {
	repoLog := baseLog.With("repo", "ScoreAttemptRepo")
	return &scoreAttemptRepo{db: db, log: repoLog}
}

func (r *scoreAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *domain.ScoreAttempt) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Create(attempt).Error
}

func (r *scoreAttemptRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.ScoreAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ScoreAttempt
	if userID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scoreAttemptRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == "" {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.ScoreAttempt{}).Error
}
