package middleware

import (
	"net/http"
	"net/url"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const currentUserKey = "currentUser"

// CurrentUser returns the logged-in user resolved by LoadUser, or nil
func CurrentUser(c echo.Context) *models.User {
	if user, ok := c.Get(currentUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// LoadUser resolves the session cookie to a user and stores it on the
// context. Requests without a valid, unexpired session pass through
// anonymously.
func LoadUser(sessions repositories.SessionRepository, users repositories.UserRepository, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			session, err := sessions.GetByToken(cookie.Value)
			if err != nil {
				return next(c)
			}

			user, err := users.GetUserByID(session.UserID)
			if err != nil {
				return next(c)
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireLogin redirects unauthenticated requests to the login page with a
// flash message
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				target := "/login?error=" + url.QueryEscape("You need to be logged in to do that")
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}
