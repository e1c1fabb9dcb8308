package ports

import (
	"context"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
)

// ListRestaurantsFilter carries all query parameters for listing
// restaurants. Filters compose conjunctively; string filters are
// case-insensitive substring matches.
type ListRestaurantsFilter struct {
	OwnerID   string   // always set: listing is scoped to the requester
	Search    string   // optional: matches name OR cuisine OR city
	Cuisine   string   // optional: matches cuisine only
	City      string   // optional: matches address city only
	MinRating *float64 // optional: average rating >= MinRating
	SortBy    string   // field name, default "createdAt"
	SortDesc  bool
	Page      int // 1-based
	Limit     int
}

// RestaurantRepository defines persistence operations for restaurant
// documents.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	// FindByID retrieves a restaurant regardless of owner (review paths
	// are open to any authenticated user).
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	// FindByIDForOwner folds ownership into existence: an owner mismatch
	// is indistinguishable from a missing document.
	FindByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Restaurant, error)
	// List returns a page of restaurants matching filter and the total count.
	List(ctx context.Context, filter ListRestaurantsFilter) ([]*domain.Restaurant, int64, error)
	// Save replaces the whole document, guarded by the version the caller
	// loaded. Returns domain.ErrVersionConflict when a concurrent write
	// bumped the version first.
	Save(ctx context.Context, r *domain.Restaurant) error
	// Delete removes the document for its owner and returns the deleted
	// state so callers can release delegate-held assets.
	Delete(ctx context.Context, id, ownerID string) (*domain.Restaurant, error)
}
