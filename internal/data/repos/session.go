package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

type SessionRepo interface {
	List(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.ChatSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*domain.ChatSession, error)
	Create(ctx context.Context, tx *gorm.DB, session *domain.ChatSession) error
	Update(ctx context.Context, tx *gorm.DB, session *domain.ChatSession) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id string) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

// List returns every session, or only one owner's sessions when userID is
// non-empty. Ordered by creation time so transcripts keep a stable order in
// the sidebar.
func (r *sessionRepo) List(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ChatSession
	query := transaction.WithContext(ctx).Order("created_at ASC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*domain.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.ChatSession
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *sessionRepo) Create(ctx context.Context, tx *gorm.DB, session *domain.ChatSession) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) Update(ctx context.Context, tx *gorm.DB, session *domain.ChatSession) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(session).Error
}

func (r *sessionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.ChatSession{}).Error
}
