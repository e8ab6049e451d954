package handlers

import (
	"net/http"
	"time"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	userRepository    repositories.UserRepository
	sessionRepository repositories.SessionRepository
	cookieName        string
	sessionTTL        time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		cookieName:        cookieName,
		sessionTTL:        sessionTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
}

// RegisterForm serves the registration form endpoint
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "register", "error": c.QueryParam("error")})
}

// LoginForm serves the login form endpoint
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "login", "error": c.QueryParam("error")})
}

// Register creates a new user and logs them straight in
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return redirectWithError(c, "/register", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return redirectWithError(c, "/register", "Please fill in all fields correctly")
	}

	// Reject duplicate usernames up front
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return redirectWithError(c, "/register", "A user with that username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return redirectWithError(c, "/register", "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Avatar:   req.Avatar,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return redirectWithError(c, "/register", err.Error())
	}

	if err := h.startSession(c, user); err != nil {
		return redirectWithError(c, "/login", "Signed up, but login failed. Please sign in.")
	}

	return redirectWithSuccess(c, "/campgrounds", "Welcome to CampVista, "+user.Username+"!")
}

// Login verifies the credentials and opens a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return redirectWithError(c, "/login", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return redirectWithError(c, "/login", "Username and password are required")
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return redirectWithError(c, "/login", "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return redirectWithError(c, "/login", "Invalid username or password")
	}

	if err := h.startSession(c, user); err != nil {
		return redirectWithError(c, "/login", "Failed to open session")
	}

	return redirectWithSuccess(c, "/campgrounds", "Welcome back, "+user.Username+"!")
}

// Logout deletes the server-side session and expires the cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessionRepository.DeleteSession(cookie.Value); err != nil {
			return redirectWithError(c, "/campgrounds", err.Error())
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return redirectWithSuccess(c, "/campgrounds", "Logged you out!")
}

func (h *AuthHandler) startSession(c echo.Context, user *models.User) error {
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	if err := h.sessionRepository.CreateSession(session); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
