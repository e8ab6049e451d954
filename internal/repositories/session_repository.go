package repositories

import (
	"time"

	"github.com/campvista/backend/internal/models"
	"gorm.io/gorm"
)

// SessionRepository defines the interface for login-session operations
type SessionRepository interface {
	CreateSession(session *models.Session) error
	GetByToken(token string) (*models.Session, error)
	DeleteSession(token string) error
	DeleteExpired() error
}

type postgresSessionRepository struct {
	db *gorm.DB
}

// NewPostgresSessionRepository creates a new SessionRepository backed by PostgreSQL
func NewPostgresSessionRepository(db *gorm.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) CreateSession(session *models.Session) error {
	return r.db.Create(session).Error
}

// GetByToken returns the session only while it has not expired
func (r *postgresSessionRepository) GetByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *postgresSessionRepository) DeleteSession(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *postgresSessionRepository) DeleteExpired() error {
	return r.db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{}).Error
}
