package repos

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

type QuizRecordRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*domain.QuizRecord, error)
	Create(ctx context.Context, tx *gorm.DB, record *domain.QuizRecord) error
	UpdateQuestions(ctx context.Context, tx *gorm.DB, record *domain.QuizRecord, questions datatypes.JSON) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
}

type quizRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRecordRepo(db *gorm.DB, baseLog *logger.Logger) QuizRecordRepo {
	repoLog := baseLog.With("repo", "QuizRecordRepo")
	return &quizRecordRepo{db: db, log: repoLog}
}

func (r *quizRecordRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*domain.QuizRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.QuizRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *quizRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *domain.QuizRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Create(record).Error
}

// UpdateQuestions overwrites the question list of an existing record in
// place, keeping its identity. This is what makes regeneration an overwrite
// rather than an append.
func (r *quizRecordRepo) UpdateQuestions(ctx context.Context, tx *gorm.DB, record *domain.QuizRecord, questions datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	record.Questions = questions
	return transaction.WithContext(ctx).
		Model(record).
		Update("quiz_json", questions).Error
}

func (r *quizRecordRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == "" {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.QuizRecord{}).Error
}
