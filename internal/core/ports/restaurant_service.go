package ports

import (
	"context"
	"io"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
)

// AddressInput holds a full postal address. Partial address updates are
// not supported: supplying an address replaces the whole block.
type AddressInput struct {
	Street     string
	City       string
	PostalCode string
}

// RestaurantInput carries all data needed to create a restaurant.
type RestaurantInput struct {
	Name        string
	Cuisine     string
	Address     AddressInput
	Phone       string
	Description string
}

// RestaurantUpdate is a partial update: nil fields keep their previous
// value.
type RestaurantUpdate struct {
	Name        *string
	Cuisine     *string
	Address     *AddressInput
	Phone       *string
	Description *string
}

// ListRestaurantsInput carries all parameters for the list endpoint, with
// the wire vocabulary of the query string (ville, noteMin).
type ListRestaurantsInput struct {
	OwnerID string
	Search  string
	Cuisine string
	Ville   string
	NoteMin *float64
	SortBy  string // default "createdAt"
	Order   string // "asc" or "desc", default "desc"
	Page    int    // default 1
	Limit   int    // default 10
}

// ListRestaurantsResult is returned by List.
type ListRestaurantsResult struct {
	Items   []*domain.Restaurant
	Total   int64
	Page    int
	Limit   int
	Pages   int
	HasMore bool
}

// UploadFile is one accepted multipart file, streamed to the media
// delegate.
type UploadFile struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ReviewUpdate uses pointers for presence: an explicit note of 0 is a
// valid update, distinct from "not provided".
type ReviewUpdate struct {
	Note    *float64
	Comment *string
}

// RestaurantService defines the use-case operations on restaurants and
// their embedded images and reviews.
type RestaurantService interface {
	Create(ctx context.Context, ownerID string, in RestaurantInput) (*domain.Restaurant, error)
	List(ctx context.Context, in ListRestaurantsInput) (*ListRestaurantsResult, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Restaurant, error)
	Update(ctx context.Context, id, ownerID string, in RestaurantUpdate) (*domain.Restaurant, error)
	Delete(ctx context.Context, id, ownerID string) error

	UploadImages(ctx context.Context, id, ownerID string, files []UploadFile) (*domain.Restaurant, error)
	DeleteImage(ctx context.Context, id, ownerID, imageRef string) (*domain.Restaurant, error)

	AddReview(ctx context.Context, id, userID string, note float64, comment string) (*domain.Restaurant, error)
	UpdateReview(ctx context.Context, id, reviewID, userID string, in ReviewUpdate) (*domain.Restaurant, error)
	DeleteReview(ctx context.Context, id, reviewID, userID string) (*domain.Restaurant, error)
}
