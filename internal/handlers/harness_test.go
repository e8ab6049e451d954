package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/campvista/backend/internal/middleware"
	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCookieName = "session_id"

type testEnv struct {
	e             *echo.Echo
	users         *fakeUserRepo
	sessions      *fakeSessionRepo
	follows       *fakeFollowRepo
	comments      *fakeCommentRepo
	reviews       *fakeReviewRepo
	notifications *fakeNotificationRepo
	campgrounds   *fakeCampgroundRepo
	geo           *fakeGeocoder
	images        *fakeImageStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		e:             echo.New(),
		sessions:      newFakeSessionRepo(),
		follows:       &fakeFollowRepo{},
		comments:      newFakeCommentRepo(),
		reviews:       newFakeReviewRepo(),
		notifications: newFakeNotificationRepo(),
		campgrounds:   newFakeCampgroundRepo(),
		geo:           newFakeGeocoder(),
		images:        &fakeImageStore{},
	}
	env.users = newFakeUserRepo(env.follows)

	env.e.Validator = validators.NewValidator()
	env.e.Use(middleware.LoadUser(env.sessions, env.users, testCookieName))
	requireLogin := middleware.RequireLogin()

	NewAuthHandler(env.users, env.sessions, testCookieName, time.Hour).RegisterAuthRoutes(env.e)
	NewCampgroundHandler(env.campgrounds, env.comments, env.reviews, env.users, env.notifications, env.geo, env.images).
		RegisterCampgroundRoutes(env.e, requireLogin)
	NewCommentHandler(env.comments, env.campgrounds).RegisterCommentRoutes(env.e, requireLogin)
	NewReviewHandler(env.reviews, env.campgrounds).RegisterReviewRoutes(env.e, requireLogin)
	NewFollowHandler(env.follows, env.users).RegisterFollowRoutes(env.e, requireLogin)
	NewUserHandler(env.users, env.campgrounds).RegisterUserRoutes(env.e)
	NewNotificationHandler(env.notifications).RegisterNotificationRoutes(env.e, requireLogin)

	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, env.users.CreateUser(user))
	return user
}

func (env *testEnv) login(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	session := &models.Session{
		Token:     fmt.Sprintf("token-%s-%d", user.Username, user.ID),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, env.sessions.CreateSession(session))
	return &http.Cookie{Name: testCookieName, Value: session.Token}
}

// seedCampground inserts a campground directly into the fake store
func (env *testEnv) seedCampground(t *testing.T, owner *models.User, name string) *models.Campground {
	t.Helper()
	campground := &models.Campground{
		Name:        name,
		Price:       12.50,
		Description: "seeded",
		Image:       "https://storage.example.com/campgrounds/seeded",
		ImageID:     "campgrounds/seeded-" + name,
		Location:    "Yosemite Valley, CA, USA",
		Lat:         37.86,
		Lng:         -119.53,
		Author:      models.Author{ID: owner.ID, Username: owner.Username},
	}
	require.NoError(t, env.campgrounds.Create(context.Background(), campground))
	return campground
}

func (env *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// multipartRequest builds a multipart form with the given fields and one
// image file part named "image"
func multipartRequest(t *testing.T, method, path string, fields map[string]string, imageFilename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageFilename != "" {
		part, err := writer.CreateFormFile("image", imageFilename)
		require.NoError(t, err)
		_, err = io.WriteString(part, "fake image bytes")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantPrefix string) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, "expected a redirect, body: %s", rec.Body.String())
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(location.Path, wantPrefix),
		"expected redirect to %s, got %s", wantPrefix, location.String())
	return location
}
