package repositories

import (
	"github.com/campvista/backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	GetByCampgroundID(campgroundID string) ([]models.Review, error)
	GetByCampgroundAndUser(campgroundID string, userID uint) (*models.Review, error)
	UpdateReview(review *models.Review) error
	DeleteReview(id uint) error
	DeleteByCampgroundID(campgroundID string) error
	AverageRating(campgroundID string) (float64, int64, error)
}

type postgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new ReviewRepository backed by PostgreSQL
func NewPostgresReviewRepository(db *gorm.DB) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func (r *postgresReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *postgresReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByCampgroundID returns a campground's reviews newest first
func (r *postgresReviewRepository) GetByCampgroundID(campgroundID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("campground_id = ?", campgroundID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// GetByCampgroundAndUser returns the user's existing review of the campground,
// if any
func (r *postgresReviewRepository) GetByCampgroundAndUser(campgroundID string, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("campground_id = ? AND user_id = ?", campgroundID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *postgresReviewRepository) UpdateReview(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *postgresReviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// DeleteByCampgroundID bulk-deletes every review referencing the campground,
// used by the campground delete cascade
func (r *postgresReviewRepository) DeleteByCampgroundID(campgroundID string) error {
	return r.db.Where("campground_id = ?", campgroundID).Delete(&models.Review{}).Error
}

// AverageRating computes the current average rating and review count for a
// campground. Zero reviews yields a zero average.
func (r *postgresReviewRepository) AverageRating(campgroundID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("campground_id = ?", campgroundID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
