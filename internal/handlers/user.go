package handlers

import (
	"net/http"
	"strconv"

	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles public user profile requests
type UserHandler struct {
	userRepository       repositories.UserRepository
	campgroundRepository repositories.CampgroundRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, campgroundRepo repositories.CampgroundRepository) *UserHandler {
	return &UserHandler{
		userRepository:       userRepo,
		campgroundRepository: campgroundRepo,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(e *echo.Echo) {
	e.GET("/users/:id", h.ShowUser)
}

// ShowUser shows a user's profile together with the campgrounds they created
func (h *UserHandler) ShowUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return redirectWithError(c, "/campgrounds", "User not found")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		return redirectWithError(c, "/campgrounds", "User not found")
	}

	campgrounds, err := h.campgroundRepository.GetByAuthorID(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":        user,
		"campgrounds": campgrounds,
	})
}
