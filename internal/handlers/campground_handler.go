package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/campvista/backend/internal/middleware"
	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/campvista/backend/pkg/geocoder"
	"github.com/campvista/backend/pkg/imagestore"
	"github.com/labstack/echo/v4"
)

const perPage = 8

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// CampgroundHandler handles HTTP requests related to campgrounds
type CampgroundHandler struct {
	campgroundRepository   repositories.CampgroundRepository
	commentRepository      repositories.CommentRepository
	reviewRepository       repositories.ReviewRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	geocoder               geocoder.Geocoder
	imageStore             imagestore.Store
}

// NewCampgroundHandler creates a new CampgroundHandler
func NewCampgroundHandler(
	campgroundRepo repositories.CampgroundRepository,
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	geo geocoder.Geocoder,
	images imagestore.Store,
) *CampgroundHandler {
	return &CampgroundHandler{
		campgroundRepository:   campgroundRepo,
		commentRepository:      commentRepo,
		reviewRepository:       reviewRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		geocoder:               geo,
		imageStore:             images,
	}
}

// RegisterCampgroundRoutes registers campground-related routes
func (h *CampgroundHandler) RegisterCampgroundRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/campgrounds", h.ListCampgrounds)
	e.GET("/campgrounds/new", h.NewCampgroundForm, requireLogin)
	e.POST("/campgrounds", h.CreateCampground, requireLogin)
	e.GET("/campgrounds/:id", h.ShowCampground)
	e.GET("/campgrounds/:id/edit", h.EditCampgroundForm, requireLogin)
	e.PUT("/campgrounds/:id", h.UpdateCampground, requireLogin)
	e.DELETE("/campgrounds/:id", h.DeleteCampground, requireLogin)
}

// ListCampgrounds lists campgrounds, either a page of 8 or the full result of
// a name search
func (h *CampgroundHandler) ListCampgrounds(c echo.Context) error {
	ctx := c.Request().Context()

	if search := c.QueryParam("search"); search != "" {
		campgrounds, err := h.campgroundRepository.SearchByName(ctx, search)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if len(campgrounds) == 0 {
			return redirectWithError(c, "/campgrounds", "No campgrounds match that search. Please try again.")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"campgrounds": campgrounds,
			"search":      search,
		})
	}

	page := parsePage(c.QueryParam("page"))
	campgrounds, err := h.campgroundRepository.List(ctx, int64((page-1)*perPage), perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.campgroundRepository.Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"campgrounds": campgrounds,
		"current":     page,
		"pages":       (count + perPage - 1) / perPage,
	})
}

// NewCampgroundForm serves the creation form endpoint
func (h *CampgroundHandler) NewCampgroundForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"page": "campgrounds/new", "error": c.QueryParam("error")})
}

// CreateCampground uploads the image, geocodes the location, persists the
// campground and fans out notifications to the author's followers
func (h *CampgroundHandler) CreateCampground(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	var form models.CampgroundForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, "/campgrounds/new", "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, "/campgrounds/new", "Please fill in all fields correctly")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return redirectWithError(c, "/campgrounds/new", "An image file is required")
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return redirectWithError(c, "/campgrounds/new", "Only image files are allowed!")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return redirectWithError(c, "/campgrounds/new", err.Error())
	}
	defer src.Close()

	upload, err := h.imageStore.Upload(ctx, src, fileHeader.Filename)
	if err != nil {
		return redirectWithError(c, "/campgrounds/new", err.Error())
	}

	location, err := h.geocoder.Geocode(ctx, form.Location)
	if err != nil {
		// The image is already in the store; compensate so no orphaned
		// asset survives an aborted creation.
		if destroyErr := h.imageStore.Destroy(ctx, upload.AssetID); destroyErr != nil {
			log.Printf("failed to clean up image %s after geocode failure: %v", upload.AssetID, destroyErr)
		}
		return redirectWithError(c, "/campgrounds/new", "Invalid address")
	}

	campground := &models.Campground{
		Name:        form.Name,
		Price:       form.Price,
		Description: form.Description,
		Image:       upload.URL,
		ImageID:     upload.AssetID,
		Location:    location.FormattedAddress,
		Lat:         location.Lat,
		Lng:         location.Lng,
		Author: models.Author{
			ID:       user.ID,
			Username: user.Username,
		},
	}

	if err := h.campgroundRepository.Create(ctx, campground); err != nil {
		if destroyErr := h.imageStore.Destroy(ctx, upload.AssetID); destroyErr != nil {
			log.Printf("failed to clean up image %s after store failure: %v", upload.AssetID, destroyErr)
		}
		return redirectWithError(c, "/campgrounds/new", err.Error())
	}

	h.fanOutNotifications(user, campground)

	return c.Redirect(http.StatusSeeOther, "/campgrounds/"+campground.ID.Hex())
}

// fanOutNotifications creates one unread notification per follower of the
// creator. This is a best-effort side channel: a failure is logged but never
// rolls back the campground.
func (h *CampgroundHandler) fanOutNotifications(user *models.User, campground *models.Campground) {
	followers, err := h.userRepository.GetFollowers(user.ID)
	if err != nil {
		log.Printf("failed to load followers of user %d for notification fan-out: %v", user.ID, err)
		return
	}

	for _, follower := range followers {
		notification := &models.Notification{
			RecipientID:   follower.ID,
			ActorID:       user.ID,
			ActorUsername: user.Username,
			CampgroundID:  campground.ID.Hex(),
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("failed to notify follower %d about campground %s: %v", follower.ID, campground.ID.Hex(), err)
		}
	}
}

// ShowCampground shows one campground with its comments and reviews
func (h *CampgroundHandler) ShowCampground(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	campground, err := h.campgroundRepository.GetByID(ctx, id)
	if err != nil {
		return redirectWithError(c, "/campgrounds", "Sorry, that campground does not exist!")
	}

	comments, err := h.commentRepository.GetByCampgroundID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reviews, err := h.reviewRepository.GetByCampgroundID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"campground": campground,
		"comments":   comments,
		"reviews":    reviews,
	})
}

// EditCampgroundForm serves the edit form endpoint, owner only
func (h *CampgroundHandler) EditCampgroundForm(c echo.Context) error {
	ctx := c.Request().Context()

	campground, denial := middleware.AuthorizeCampgroundOwner(ctx, h.campgroundRepository, c.Param("id"), currentUser(c))
	if denial != nil {
		return redirectWithError(c, denial.RedirectTo, denial.Reason)
	}

	return c.JSON(http.StatusOK, echo.Map{"campground": campground})
}

// UpdateCampground re-geocodes the location, optionally swaps the image and
// saves the campground, owner only
func (h *CampgroundHandler) UpdateCampground(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	campground, denial := middleware.AuthorizeCampgroundOwner(ctx, h.campgroundRepository, id, currentUser(c))
	if denial != nil {
		return redirectWithError(c, denial.RedirectTo, denial.Reason)
	}

	editPath := "/campgrounds/" + id + "/edit"

	var form models.CampgroundForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, editPath, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithError(c, editPath, "Please fill in all fields correctly")
	}

	// The location is re-geocoded on every update, changed or not, so an
	// invalid address can never be saved.
	location, err := h.geocoder.Geocode(ctx, form.Location)
	if err != nil {
		return redirectWithError(c, editPath, "Invalid address")
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		if !allowedImageExts[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
			return redirectWithError(c, editPath, "Only image files are allowed!")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return redirectWithError(c, editPath, err.Error())
		}
		defer src.Close()

		// Destroy-then-upload, the order the replace flow has always
		// used. A failed upload after a successful destroy leaves the
		// record pointing at a gone asset until the retry succeeds.
		if err := h.imageStore.Destroy(ctx, campground.ImageID); err != nil {
			return redirectWithError(c, editPath, err.Error())
		}
		upload, err := h.imageStore.Upload(ctx, src, fileHeader.Filename)
		if err != nil {
			return redirectWithError(c, editPath, err.Error())
		}
		campground.Image = upload.URL
		campground.ImageID = upload.AssetID
	}

	campground.Name = form.Name
	campground.Price = form.Price
	campground.Description = form.Description
	campground.Location = location.FormattedAddress
	campground.Lat = location.Lat
	campground.Lng = location.Lng

	if err := h.campgroundRepository.Update(ctx, id, campground); err != nil {
		return redirectWithError(c, editPath, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, "/campgrounds/"+id)
}

// DeleteCampground destroys the image asset, cascades over comments and
// reviews and removes the campground, owner only
func (h *CampgroundHandler) DeleteCampground(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	campground, denial := middleware.AuthorizeCampgroundOwner(ctx, h.campgroundRepository, id, currentUser(c))
	if denial != nil {
		return redirectWithError(c, denial.RedirectTo, denial.Reason)
	}

	showPath := "/campgrounds/" + id

	if err := h.imageStore.Destroy(ctx, campground.ImageID); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}
	if err := h.commentRepository.DeleteByCampgroundID(id); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}
	if err := h.reviewRepository.DeleteByCampgroundID(id); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}
	if err := h.campgroundRepository.Delete(ctx, id); err != nil {
		return redirectWithError(c, showPath, err.Error())
	}

	return redirectWithSuccess(c, "/campgrounds", "Campground deleted successfully")
}
