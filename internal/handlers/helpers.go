package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/campvista/backend/internal/middleware"
	"github.com/campvista/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// Flash messages travel as query parameters on the redirect target, the way a
// server-rendered app would surface a transient notice after a POST.

func redirectWithError(c echo.Context, target, message string) error {
	return c.Redirect(http.StatusSeeOther, target+"?error="+url.QueryEscape(message))
}

func redirectWithSuccess(c echo.Context, target, message string) error {
	return c.Redirect(http.StatusSeeOther, target+"?success="+url.QueryEscape(message))
}

func currentUser(c echo.Context) *models.User {
	return middleware.CurrentUser(c)
}

// parsePositive interprets a query value as a positive integer, falling back
// for anything that is not one or that exceeds max (max 0 means unbounded)
func parsePositive(raw string, fallback, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	if max > 0 && n > max {
		return fallback
	}
	return n
}

// parsePage interprets the page query value, falling back to 1 for anything
// that is not a positive integer
func parsePage(raw string) int {
	return parsePositive(raw, 1, 0)
}
