package repositories

import (
	"github.com/campvista/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetByCampgroundID(campgroundID string) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
	DeleteByCampgroundID(campgroundID string) error
}

type postgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new CommentRepository backed by PostgreSQL
func NewPostgresCommentRepository(db *gorm.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *postgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByCampgroundID returns a campground's comments oldest first, the order
// they appear under the listing
func (r *postgresCommentRepository) GetByCampgroundID(campgroundID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("campground_id = ?", campgroundID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *postgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *postgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// DeleteByCampgroundID bulk-deletes every comment referencing the campground,
// used by the campground delete cascade
func (r *postgresCommentRepository) DeleteByCampgroundID(campgroundID string) error {
	return r.db.Where("campground_id = ?", campgroundID).Delete(&models.Comment{}).Error
}
