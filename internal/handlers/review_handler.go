package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReviewHandler handles HTTP requests related to reviews
type ReviewHandler struct {
	reviewRepository     repositories.ReviewRepository
	campgroundRepository repositories.CampgroundRepository
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewRepo repositories.ReviewRepository, campgroundRepo repositories.CampgroundRepository) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository:     reviewRepo,
		campgroundRepository: campgroundRepo,
	}
}

// RegisterReviewRoutes registers review-related routes
func (h *ReviewHandler) RegisterReviewRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.POST("/campgrounds/:id/reviews", h.CreateReview, requireLogin)
	e.PUT("/campgrounds/:id/reviews/:reviewId", h.UpdateReview, requireLogin)
	e.DELETE("/campgrounds/:id/reviews/:reviewId", h.DeleteReview, requireLogin)
}

// CreateReview adds a review to a campground. A user gets one review per
// campground.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	campgroundID := c.Param("id")

	if _, err := h.campgroundRepository.GetByID(ctx, campgroundID); err != nil {
		return redirectWithError(c, "/campgrounds", "Sorry, that campground does not exist!")
	}

	showPath := "/campgrounds/" + campgroundID

	if _, err := h.reviewRepository.GetByCampgroundAndUser(campgroundID, user.ID); err == nil {
		return redirectWithError(c, showPath, "You already wrote a review for this campground")
	}

	var form models.ReviewForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, showPath, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, showPath, "A rating between 1 and 5 and review text are required")
	}

	review := &models.Review{
		CampgroundID: campgroundID,
		UserID:       user.ID,
		Username:     user.Username,
		Rating:       form.Rating,
		Text:         form.Text,
	}

	if err := h.reviewRepository.CreateReview(review); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	h.recalculateRating(ctx, campgroundID)

	return redirectWithSuccess(c, showPath, "Your review has been successfully added")
}

// UpdateReview edits a review, review owner only
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	campgroundID := c.Param("id")
	showPath := "/campgrounds/" + campgroundID

	review, err := h.loadReview(c)
	if err != nil {
		return redirectWithError(c, showPath, "Review not found")
	}

	if review.UserID != user.ID {
		return redirectWithError(c, showPath, "You don't have permission to do that")
	}

	var form models.ReviewForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, showPath, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, showPath, "A rating between 1 and 5 and review text are required")
	}

	review.Rating = form.Rating
	review.Text = form.Text
	if err := h.reviewRepository.UpdateReview(review); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	h.recalculateRating(ctx, campgroundID)

	return redirectWithSuccess(c, showPath, "Your review was successfully edited")
}

// DeleteReview removes a review, review owner only
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	campgroundID := c.Param("id")
	showPath := "/campgrounds/" + campgroundID

	review, err := h.loadReview(c)
	if err != nil {
		return redirectWithError(c, showPath, "Review not found")
	}

	if review.UserID != user.ID {
		return redirectWithError(c, showPath, "You don't have permission to do that")
	}

	if err := h.reviewRepository.DeleteReview(review.ID); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	h.recalculateRating(ctx, campgroundID)

	return redirectWithSuccess(c, showPath, "Your review was deleted successfully")
}

// recalculateRating refreshes the campground's stored average after any
// review change. Failures are logged; the review write already happened.
func (h *ReviewHandler) recalculateRating(ctx context.Context, campgroundID string) {
	avg, count, err := h.reviewRepository.AverageRating(campgroundID)
	if err != nil {
		log.Printf("failed to compute rating for campground %s: %v", campgroundID, err)
		return
	}
	if err := h.campgroundRepository.SetRating(ctx, campgroundID, avg, int(count)); err != nil {
		log.Printf("failed to store rating for campground %s: %v", campgroundID, err)
	}
}

func (h *ReviewHandler) loadReview(c echo.Context) (*models.Review, error) {
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		return nil, err
	}
	return h.reviewRepository.GetReviewByID(uint(reviewID))
}
