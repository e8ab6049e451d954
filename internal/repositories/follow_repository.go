package repositories

import (
	"github.com/campvista/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
}

type postgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new FollowRepository backed by PostgreSQL
func NewPostgresFollowRepository(db *gorm.DB) FollowRepository {
	return &postgresFollowRepository{db: db}
}

func (r *postgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *postgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *postgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}
