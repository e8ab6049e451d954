package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the denormalized snapshot of the creating user embedded in a
// campground document. The username is captured at creation time and is not
// updated if the user later renames.
type Author struct {
	ID       uint   `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

// Campground represents a campground listing stored in MongoDB
type Campground struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Price         float64            `json:"price" bson:"price"`
	Description   string             `json:"description" bson:"description"`
	Image         string             `json:"image" bson:"image"`       // public URL
	ImageID       string             `json:"image_id" bson:"image_id"` // deletable asset reference
	Location      string             `json:"location" bson:"location"` // formatted address from the geocoder
	Lat           float64            `json:"lat" bson:"lat"`
	Lng           float64            `json:"lng" bson:"lng"`
	Author        Author             `json:"author" bson:"author"`
	Rating        float64            `json:"rating" bson:"rating"` // average of review ratings
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	ReviewsCount  int                `json:"reviews_count" bson:"reviews_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CampgroundForm defines the form body for creating or updating a campground.
// The image arrives separately as a multipart file.
type CampgroundForm struct {
	Name        string  `form:"name" json:"name" validate:"required,min=1,max=100"`
	Price       float64 `form:"price" json:"price" validate:"required,min=0"`
	Description string  `form:"description" json:"description" validate:"required,min=1,max=2000"`
	Location    string  `form:"location" json:"location" validate:"required,min=1,max=200"`
}
