package repository

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetUserByToken resolves a live session token to its user. Expired and
// unknown tokens both map to NotFound; callers cannot tell them apart.
func (r *sessionRepository) GetUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_sessions ON user_sessions.user_id = users.id").
		Where("user_sessions.session_token = ? AND user_sessions.expires_at > ?", token, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Session", "token")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&models.Session{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Invalidation is lazy, so
// this is housekeeping only; nothing schedules it automatically.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Session{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
