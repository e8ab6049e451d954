package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/campvista/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCampgroundNotFound covers both a malformed id and a missing document, so
// handlers can treat the two the same way (flash + redirect to the listing).
var ErrCampgroundNotFound = errors.New("campground not found")

// CampgroundRepository defines the interface for campground data operations
type CampgroundRepository interface {
	Create(ctx context.Context, campground *models.Campground) error
	GetByID(ctx context.Context, id string) (*models.Campground, error)
	List(ctx context.Context, skip, limit int64) ([]models.Campground, error)
	Count(ctx context.Context) (int64, error)
	SearchByName(ctx context.Context, search string) ([]models.Campground, error)
	GetByAuthorID(ctx context.Context, authorID uint) ([]models.Campground, error)
	Update(ctx context.Context, id string, campground *models.Campground) error
	Delete(ctx context.Context, id string) error
	SetRating(ctx context.Context, id string, rating float64, reviewsCount int) error
	IncrementCommentsCount(ctx context.Context, id string) error
	DecrementCommentsCount(ctx context.Context, id string) error
}

// MongoCampgroundRepository implements CampgroundRepository for MongoDB
type MongoCampgroundRepository struct {
	collection *mongo.Collection
}

// NewMongoCampgroundRepository creates a new MongoCampgroundRepository
func NewMongoCampgroundRepository(db *mongo.Database) *MongoCampgroundRepository {
	return &MongoCampgroundRepository{collection: db.Collection("campgrounds")}
}

// Create inserts a new campground document
func (r *MongoCampgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	campground.ID = primitive.NewObjectID()
	campground.CreatedAt = time.Now()
	campground.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, campground)
	return err
}

// GetByID retrieves a campground by its hex id
func (r *MongoCampgroundRepository) GetByID(ctx context.Context, id string) (*models.Campground, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCampgroundNotFound
	}

	var campground models.Campground
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&campground)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampgroundNotFound
		}
		return nil, err
	}
	return &campground, nil
}

// List retrieves a page of campgrounds in the collection's natural order
func (r *MongoCampgroundRepository) List(ctx context.Context, skip, limit int64) ([]models.Campground, error) {
	var campgrounds []models.Campground
	findOptions := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &campgrounds); err != nil {
		return nil, err
	}
	return campgrounds, nil
}

// Count returns the total number of campgrounds
func (r *MongoCampgroundRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// nameSearchFilter builds the case-insensitive name filter for a search. The
// user text is quoted so regex metacharacters match literally.
func nameSearchFilter(search string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}}
}

// SearchByName retrieves all campgrounds whose name contains the search text
func (r *MongoCampgroundRepository) SearchByName(ctx context.Context, search string) ([]models.Campground, error) {
	var campgrounds []models.Campground
	cursor, err := r.collection.Find(ctx, nameSearchFilter(search))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &campgrounds); err != nil {
		return nil, err
	}
	return campgrounds, nil
}

// GetByAuthorID retrieves the campgrounds created by a user, newest first
func (r *MongoCampgroundRepository) GetByAuthorID(ctx context.Context, authorID uint) ([]models.Campground, error) {
	var campgrounds []models.Campground
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author.id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &campgrounds); err != nil {
		return nil, err
	}
	return campgrounds, nil
}

// Update replaces the mutable fields of an existing campground
func (r *MongoCampgroundRepository) Update(ctx context.Context, id string, campground *models.Campground) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCampgroundNotFound
	}

	campground.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        campground.Name,
			"price":       campground.Price,
			"description": campground.Description,
			"image":       campground.Image,
			"image_id":    campground.ImageID,
			"location":    campground.Location,
			"lat":         campground.Lat,
			"lng":         campground.Lng,
			"updated_at":  campground.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCampgroundNotFound
	}
	return nil
}

// Delete removes a campground document
func (r *MongoCampgroundRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCampgroundNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCampgroundNotFound
	}
	return nil
}

// SetRating stores the recomputed average review rating
func (r *MongoCampgroundRepository) SetRating(ctx context.Context, id string, rating float64, reviewsCount int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCampgroundNotFound
	}
	update := bson.M{"$set": bson.M{"rating": rating, "reviews_count": reviewsCount}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

// IncrementCommentsCount increments the comments count of a campground
func (r *MongoCampgroundRepository) IncrementCommentsCount(ctx context.Context, id string) error {
	return r.adjustCommentsCount(ctx, id, 1)
}

// DecrementCommentsCount decrements the comments count of a campground
func (r *MongoCampgroundRepository) DecrementCommentsCount(ctx context.Context, id string) error {
	return r.adjustCommentsCount(ctx, id, -1)
}

func (r *MongoCampgroundRepository) adjustCommentsCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid campground ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}
