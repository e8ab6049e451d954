package handlers

import (
	"log"
	"strconv"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository    repositories.CommentRepository
	campgroundRepository repositories.CampgroundRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, campgroundRepo repositories.CampgroundRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:    commentRepo,
		campgroundRepository: campgroundRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.POST("/campgrounds/:id/comments", h.CreateComment, requireLogin)
	e.PUT("/campgrounds/:id/comments/:commentId", h.UpdateComment, requireLogin)
	e.DELETE("/campgrounds/:id/comments/:commentId", h.DeleteComment, requireLogin)
}

// CreateComment adds a comment to a campground
func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	campgroundID := c.Param("id")

	if _, err := h.campgroundRepository.GetByID(ctx, campgroundID); err != nil {
		return redirectWithError(c, "/campgrounds", "Sorry, that campground does not exist!")
	}

	showPath := "/campgrounds/" + campgroundID

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, showPath, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, showPath, "Comment text is required")
	}

	comment := &models.Comment{
		CampgroundID: campgroundID,
		UserID:       user.ID,
		Username:     user.Username,
		Text:         form.Text,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	if err := h.campgroundRepository.IncrementCommentsCount(ctx, campgroundID); err != nil {
		log.Printf("failed to bump comment count for campground %s: %v", campgroundID, err)
	}

	return redirectWithSuccess(c, showPath, "Successfully added comment")
}

// UpdateComment edits a comment, comment owner only
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	user := currentUser(c)
	campgroundID := c.Param("id")
	showPath := "/campgrounds/" + campgroundID

	comment, err := h.loadComment(c)
	if err != nil {
		return redirectWithError(c, showPath, "Comment not found")
	}

	if comment.UserID != user.ID {
		return redirectWithError(c, showPath, "You don't have permission to do that")
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, showPath, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, showPath, "Comment text is required")
	}

	comment.Text = form.Text
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	return redirectWithSuccess(c, showPath, "Comment updated")
}

// DeleteComment removes a comment. Both the comment's author and the
// campground's owner may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	campgroundID := c.Param("id")
	showPath := "/campgrounds/" + campgroundID

	comment, err := h.loadComment(c)
	if err != nil {
		return redirectWithError(c, showPath, "Comment not found")
	}

	campground, err := h.campgroundRepository.GetByID(ctx, campgroundID)
	if err != nil {
		return redirectWithError(c, "/campgrounds", "Sorry, that campground does not exist!")
	}

	if comment.UserID != user.ID && campground.Author.ID != user.ID {
		return redirectWithError(c, showPath, "You don't have permission to do that")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	if err := h.campgroundRepository.DecrementCommentsCount(ctx, campgroundID); err != nil {
		log.Printf("failed to drop comment count for campground %s: %v", campgroundID, err)
	}

	return redirectWithSuccess(c, showPath, "Comment deleted")
}

func (h *CommentHandler) loadComment(c echo.Context) (*models.Comment, error) {
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		return nil, err
	}
	return h.commentRepository.GetCommentByID(uint(commentID))
}
