package handlers

import (
	"strconv"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.POST("/users/:id/follow", h.FollowUser, requireLogin)
	e.DELETE("/users/:id/follow", h.UnfollowUser, requireLogin)
}

// FollowUser makes the logged-in user a follower of the target user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user := currentUser(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return redirectWithError(c, "/campgrounds", "User not found")
	}

	if user.ID == uint(targetID) {
		return redirectWithError(c, "/users/"+c.Param("id"), "You cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		return redirectWithError(c, "/campgrounds", "User not found")
	}

	profilePath := "/users/" + c.Param("id")

	isFollowing, err := h.followRepository.IsFollowing(user.ID, target.ID)
	if err != nil {
		return redirectWithError(c, profilePath, err.Error())
	}
	if isFollowing {
		return redirectWithError(c, profilePath, "You already follow "+target.Username)
	}

	follow := &models.Follow{
		FollowerID:  user.ID,
		FollowingID: target.ID,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return redirectWithError(c, profilePath, err.Error())
	}

	return redirectWithSuccess(c, profilePath, "Successfully followed "+target.Username+"!")
}

// UnfollowUser removes the follows edge to the target user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user := currentUser(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return redirectWithError(c, "/campgrounds", "User not found")
	}

	profilePath := "/users/" + c.Param("id")

	if err := h.followRepository.DeleteFollow(user.ID, uint(targetID)); err != nil {
		return redirectWithError(c, profilePath, err.Error())
	}

	return redirectWithSuccess(c, profilePath, "Unfollowed")
}
