package middleware

import (
	"context"
	"errors"

	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
)

// Denial explains why a mutation was refused and where to send the user.
type Denial struct {
	Reason     string
	RedirectTo string
}

// AuthorizeCampgroundOwner loads the campground and confirms the user owns
// it. It returns either the loaded campground or a denial, never both, so the
// handler consumes the decision explicitly and reuses the loaded document
// without a second lookup.
func AuthorizeCampgroundOwner(ctx context.Context, campgrounds repositories.CampgroundRepository, id string, user *models.User) (*models.Campground, *Denial) {
	if user == nil {
		return nil, &Denial{
			Reason:     "You need to be logged in to do that",
			RedirectTo: "/login",
		}
	}

	campground, err := campgrounds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampgroundNotFound) {
			return nil, &Denial{
				Reason:     "Sorry, that campground does not exist!",
				RedirectTo: "/campgrounds",
			}
		}
		return nil, &Denial{
			Reason:     err.Error(),
			RedirectTo: "/campgrounds",
		}
	}

	if campground.Author.ID != user.ID {
		return nil, &Denial{
			Reason:     "You don't have permission to do that",
			RedirectTo: "/campgrounds/" + id,
		}
	}

	return campground, nil
}
