package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/campvista/backend/pkg/geocoder"
	"github.com/campvista/backend/pkg/imagestore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository and client interfaces, so handler tests
// run without Postgres, Mongo or any external API.

var errFakeNotFound = errors.New("record not found")

// --- campgrounds ---

type fakeCampgroundRepo struct {
	docs  map[string]*models.Campground
	order []string // insertion order, stands in for Mongo's natural order
}

func newFakeCampgroundRepo() *fakeCampgroundRepo {
	return &fakeCampgroundRepo{docs: map[string]*models.Campground{}}
}

func (r *fakeCampgroundRepo) Create(_ context.Context, campground *models.Campground) error {
	campground.ID = primitive.NewObjectID()
	campground.CreatedAt = time.Now()
	campground.UpdatedAt = time.Now()
	stored := *campground
	r.docs[campground.ID.Hex()] = &stored
	r.order = append(r.order, campground.ID.Hex())
	return nil
}

func (r *fakeCampgroundRepo) GetByID(_ context.Context, id string) (*models.Campground, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrCampgroundNotFound
	}
	doc, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrCampgroundNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeCampgroundRepo) List(_ context.Context, skip, limit int64) ([]models.Campground, error) {
	var out []models.Campground
	for i := skip; i < int64(len(r.order)) && int64(len(out)) < limit; i++ {
		out = append(out, *r.docs[r.order[i]])
	}
	return out, nil
}

func (r *fakeCampgroundRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.order)), nil
}

func (r *fakeCampgroundRepo) SearchByName(_ context.Context, search string) ([]models.Campground, error) {
	// Same literal-substring semantics as the Mongo repository's filter.
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
	var out []models.Campground
	for _, id := range r.order {
		if re.MatchString(r.docs[id].Name) {
			out = append(out, *r.docs[id])
		}
	}
	return out, nil
}

func (r *fakeCampgroundRepo) GetByAuthorID(_ context.Context, authorID uint) ([]models.Campground, error) {
	var out []models.Campground
	for _, id := range r.order {
		if r.docs[id].Author.ID == authorID {
			out = append(out, *r.docs[id])
		}
	}
	return out, nil
}

func (r *fakeCampgroundRepo) Update(_ context.Context, id string, campground *models.Campground) error {
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrCampgroundNotFound
	}
	campground.UpdatedAt = time.Now()
	stored := *campground
	r.docs[id] = &stored
	return nil
}

func (r *fakeCampgroundRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrCampgroundNotFound
	}
	delete(r.docs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCampgroundRepo) SetRating(_ context.Context, id string, rating float64, reviewsCount int) error {
	doc, ok := r.docs[id]
	if !ok {
		return repositories.ErrCampgroundNotFound
	}
	doc.Rating = rating
	doc.ReviewsCount = reviewsCount
	return nil
}

func (r *fakeCampgroundRepo) IncrementCommentsCount(_ context.Context, id string) error {
	if doc, ok := r.docs[id]; ok {
		doc.CommentsCount++
	}
	return nil
}

func (r *fakeCampgroundRepo) DecrementCommentsCount(_ context.Context, id string) error {
	if doc, ok := r.docs[id]; ok {
		doc.CommentsCount--
	}
	return nil
}

// --- users & follows ---

type fakeFollowRepo struct {
	edges []models.Follow
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	follow.ID = uint(len(r.edges) + 1)
	follow.CreatedAt = time.Now()
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	for i, edge := range r.edges {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, edge := range r.edges {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users   map[uint]*models.User
	nextID  uint
	follows *fakeFollowRepo
}

func newFakeUserRepo(follows *fakeFollowRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1, follows: follows}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return errors.New("duplicate username")
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetFollowers(userID uint) ([]models.User, error) {
	var out []models.User
	for _, edge := range r.follows.edges {
		if edge.FollowingID == userID {
			if follower, ok := r.users[edge.FollowerID]; ok {
				out = append(out, *follower)
			}
		}
	}
	return out, nil
}

// --- sessions ---

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) CreateSession(session *models.Session) error {
	stored := *session
	r.sessions[session.Token] = &stored
	return nil
}

func (r *fakeSessionRepo) GetByToken(token string) (*models.Session, error) {
	session, ok := r.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, errFakeNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) DeleteSession(token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired() error {
	for token, session := range r.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.sessions, token)
		}
	}
	return nil
}

// --- comments ---

type fakeCommentRepo struct {
	comments []models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	for _, comment := range r.comments {
		if comment.ID == id {
			copied := comment
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeCommentRepo) GetByCampgroundID(campgroundID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.CampgroundID == campgroundID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	for i := range r.comments {
		if r.comments[i].ID == comment.ID {
			r.comments[i] = *comment
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeCommentRepo) DeleteByCampgroundID(campgroundID string) error {
	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.CampgroundID != campgroundID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
	return nil
}

// --- reviews ---

type fakeReviewRepo struct {
	reviews []models.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1}
}

func (r *fakeReviewRepo) CreateReview(review *models.Review) error {
	review.ID = r.nextID
	r.nextID++
	review.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) GetReviewByID(id uint) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.ID == id {
			copied := review
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeReviewRepo) GetByCampgroundID(campgroundID string) ([]models.Review, error) {
	var out []models.Review
	for i := len(r.reviews) - 1; i >= 0; i-- { // newest first
		if r.reviews[i].CampgroundID == campgroundID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) GetByCampgroundAndUser(campgroundID string, userID uint) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.CampgroundID == campgroundID && review.UserID == userID {
			copied := review
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeReviewRepo) UpdateReview(review *models.Review) error {
	for i := range r.reviews {
		if r.reviews[i].ID == review.ID {
			r.reviews[i] = *review
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeReviewRepo) DeleteReview(id uint) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeReviewRepo) DeleteByCampgroundID(campgroundID string) error {
	kept := r.reviews[:0]
	for _, review := range r.reviews {
		if review.CampgroundID != campgroundID {
			kept = append(kept, review)
		}
	}
	r.reviews = kept
	return nil
}

func (r *fakeReviewRepo) AverageRating(campgroundID string) (float64, int64, error) {
	var sum, count int64
	for _, review := range r.reviews {
		if review.CampgroundID == campgroundID {
			sum += int64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			copied := notification
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var all []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- { // newest first
		if r.notifications[i].RecipientID == recipientID {
			all = append(all, r.notifications[i])
		}
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return errFakeNotFound
}

// --- geocoder ---

type fakeGeocoder struct {
	results map[string]*geocoder.Location
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: map[string]*geocoder.Location{}}
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (*geocoder.Location, error) {
	if location, ok := g.results[address]; ok {
		return location, nil
	}
	return nil, geocoder.ErrNoResults
}

// --- image store ---

type fakeImageStore struct {
	uploads    int
	destroyed  []string
	failUpload bool
}

func (s *fakeImageStore) Upload(_ context.Context, file io.Reader, filename string) (*imagestore.UploadResult, error) {
	if s.failUpload {
		return nil, errors.New("image store unavailable")
	}
	if _, err := io.Copy(io.Discard, file); err != nil {
		return nil, err
	}
	s.uploads++
	assetID := fmt.Sprintf("campgrounds/asset-%d", s.uploads)
	return &imagestore.UploadResult{
		URL:     "https://storage.example.com/" + assetID,
		AssetID: assetID,
	}, nil
}

func (s *fakeImageStore) Destroy(_ context.Context, assetID string) error {
	s.destroyed = append(s.destroyed, assetID)
	return nil
}
