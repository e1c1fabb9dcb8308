package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	// maxSaveAttempts bounds the optimistic-lock retry loop on
	// read-modify-write operations against a single document.
	maxSaveAttempts = 3
	// maxUploadFiles caps how many images one upload request may carry.
	maxUploadFiles = 5
)

// allowedImageTypes mirrors the delegate-side format whitelist.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// RestaurantService implements all restaurant use cases, including the
// embedded image and review sub-collections.
type RestaurantService struct {
	repo    ports.RestaurantRepository
	media   ports.MediaStore
	cleanup ports.CleanupQueue
	log     zerolog.Logger
}

func NewRestaurantService(
	repo ports.RestaurantRepository,
	media ports.MediaStore,
	cleanup ports.CleanupQueue,
	log zerolog.Logger,
) *RestaurantService {
	return &RestaurantService{repo: repo, media: media, cleanup: cleanup, log: log}
}

// Create validates the required fields and persists a new restaurant
// owned by ownerID.
func (s *RestaurantService) Create(ctx context.Context, ownerID string, in ports.RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurantInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Restaurant{
		Name:    strings.TrimSpace(in.Name),
		Cuisine: strings.TrimSpace(in.Cuisine),
		Address: domain.Address{
			Street:     in.Address.Street,
			City:       in.Address.City,
			PostalCode: in.Address.PostalCode,
		},
		Phone:       strings.TrimSpace(in.Phone),
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
		Images:      []domain.Image{},
		Reviews:     []domain.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.RecalculateRating()

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create restaurant")
		return nil, err
	}

	s.log.Info().Str("restaurant_id", created.ID).Str("owner_id", ownerID).Msg("restaurant created")
	return created, nil
}

// List returns the requester's own restaurants matching the filters, with
// 1-indexed pagination metadata.
func (s *RestaurantService) List(ctx context.Context, in ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortDesc := !strings.EqualFold(in.Order, "asc")

	items, total, err := s.repo.List(ctx, ports.ListRestaurantsFilter{
		OwnerID:   in.OwnerID,
		Search:    in.Search,
		Cuisine:   in.Cuisine,
		City:      in.Ville,
		MinRating: in.NoteMin,
		SortBy:    sortBy,
		SortDesc:  sortDesc,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListRestaurantsResult{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   int(math.Ceil(float64(total) / float64(limit))),
		HasMore: int64(page*limit) < total,
	}, nil
}

// Get retrieves one restaurant for its owner. A foreign owner gets the
// same not-found as a missing id.
func (s *RestaurantService) Get(ctx context.Context, id, ownerID string) (*domain.Restaurant, error) {
	return s.repo.FindByIDForOwner(ctx, id, ownerID)
}

// Update applies a partial update to an owned restaurant. Nil fields keep
// their previous value; a supplied address replaces the whole block.
func (s *RestaurantService) Update(ctx context.Context, id, ownerID string, in ports.RestaurantUpdate) (*domain.Restaurant, error) {
	if err := validateRestaurantUpdate(in); err != nil {
		return nil, err
	}

	return s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByIDForOwner(ctx, id, ownerID)
		},
		func(r *domain.Restaurant) error {
			if in.Name != nil {
				r.Name = strings.TrimSpace(*in.Name)
			}
			if in.Cuisine != nil {
				r.Cuisine = strings.TrimSpace(*in.Cuisine)
			}
			if in.Address != nil {
				r.Address = domain.Address{
					Street:     in.Address.Street,
					City:       in.Address.City,
					PostalCode: in.Address.PostalCode,
				}
			}
			if in.Phone != nil {
				r.Phone = strings.TrimSpace(*in.Phone)
			}
			if in.Description != nil {
				r.Description = strings.TrimSpace(*in.Description)
			}
			return nil
		})
}

// Delete removes an owned restaurant and queues delegate-side deletion of
// every attached image asset.
func (s *RestaurantService) Delete(ctx context.Context, id, ownerID string) error {
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}

	for _, img := range deleted.Images {
		s.enqueueCleanup(ctx, img.PublicID)
	}

	s.log.Info().Str("restaurant_id", id).Int("images_queued", len(deleted.Images)).Msg("restaurant deleted")
	return nil
}

// UploadImages streams each accepted file to the media delegate and
// appends the returned locators to the restaurant's image list. The
// format check runs before any delegate call.
func (s *RestaurantService) UploadImages(ctx context.Context, id, ownerID string, files []ports.UploadFile) (*domain.Restaurant, error) {
	if len(files) == 0 {
		return nil, domain.Validationf("no file provided in field %q", "images")
	}
	if len(files) > maxUploadFiles {
		return nil, domain.Validationf("at most %d images can be uploaded per request", maxUploadFiles)
	}
	for _, f := range files {
		if !allowedImageTypes[strings.ToLower(f.ContentType)] {
			return nil, domain.ErrUnsupportedFormat
		}
	}

	// Ownership check happens before the uploads so a mismatch never
	// creates orphan assets.
	if _, err := s.repo.FindByIDForOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}

	uploaded := make([]domain.Image, 0, len(files))
	for _, f := range files {
		asset, err := s.media.Upload(ctx, f.Filename, f.Reader)
		if err != nil {
			// Assets stored before the failure are released through the
			// cleanup queue rather than left orphaned.
			for _, img := range uploaded {
				s.enqueueCleanup(ctx, img.PublicID)
			}
			s.log.Error().Err(err).Str("restaurant_id", id).Msg("image upload failed")
			return nil, err
		}
		uploaded = append(uploaded, domain.Image{
			ID:       newEmbeddedID(),
			URL:      asset.URL,
			PublicID: asset.PublicID,
		})
	}

	r, err := s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByIDForOwner(ctx, id, ownerID)
		},
		func(r *domain.Restaurant) error {
			r.Images = append(r.Images, uploaded...)
			return nil
		})
	if err != nil {
		for _, img := range uploaded {
			s.enqueueCleanup(ctx, img.PublicID)
		}
		return nil, err
	}

	return r, nil
}

// DeleteImage removes an embedded image matched by entry id or public id.
// The document is updated first; the delegate destroy runs after, and a
// destroy failure is compensated through the cleanup queue so the asset
// is not orphaned.
func (s *RestaurantService) DeleteImage(ctx context.Context, id, ownerID, imageRef string) (*domain.Restaurant, error) {
	var removed domain.Image

	r, err := s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByIDForOwner(ctx, id, ownerID)
		},
		func(r *domain.Restaurant) error {
			img, ok := r.RemoveImage(imageRef)
			if !ok {
				return domain.ErrImageNotFound
			}
			removed = img
			return nil
		})
	if err != nil {
		return nil, err
	}

	if err := s.media.Destroy(ctx, removed.PublicID); err != nil {
		s.log.Warn().Err(err).Str("public_id", removed.PublicID).Msg("delegate destroy failed, queueing cleanup")
		s.enqueueCleanup(ctx, removed.PublicID)
	}

	return r, nil
}

// AddReview inserts a review for userID, enforcing one review per user
// per restaurant. Any authenticated user may review any restaurant.
func (s *RestaurantService) AddReview(ctx context.Context, id, userID string, note float64, comment string) (*domain.Restaurant, error) {
	if err := validateNote(note); err != nil {
		return nil, err
	}

	r, err := s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByID(ctx, id)
		},
		func(r *domain.Restaurant) error {
			if _, ok := r.ReviewByUser(userID); ok {
				return domain.ErrReviewExists
			}
			r.Reviews = append(r.Reviews, domain.Review{
				ID:      newEmbeddedID(),
				UserID:  userID,
				Note:    note,
				Comment: comment,
				Date:    time.Now().UTC(),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// UpdateReview mutates a review in place. Only the review's author may
// touch it, even when the restaurant belongs to the requester. Absent
// fields keep their previous value; an explicit note of 0 is applied.
func (s *RestaurantService) UpdateReview(ctx context.Context, id, reviewID, userID string, in ports.ReviewUpdate) (*domain.Restaurant, error) {
	if in.Note != nil {
		if err := validateNote(*in.Note); err != nil {
			return nil, err
		}
	}

	r, err := s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByID(ctx, id)
		},
		func(r *domain.Restaurant) error {
			review, ok := r.ReviewByID(reviewID)
			if !ok {
				return domain.ErrReviewNotFound
			}
			if review.UserID != userID {
				return domain.ErrReviewForbidden
			}
			if in.Note != nil {
				review.Note = *in.Note
			}
			if in.Comment != nil {
				review.Comment = *in.Comment
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// DeleteReview removes a review, author-only.
func (s *RestaurantService) DeleteReview(ctx context.Context, id, reviewID, userID string) (*domain.Restaurant, error) {
	r, err := s.mutate(ctx,
		func(ctx context.Context) (*domain.Restaurant, error) {
			return s.repo.FindByID(ctx, id)
		},
		func(r *domain.Restaurant) error {
			review, ok := r.ReviewByID(reviewID)
			if !ok {
				return domain.ErrReviewNotFound
			}
			if review.UserID != userID {
				return domain.ErrReviewForbidden
			}
			r.RemoveReview(reviewID)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// mutate runs the read-modify-write cycle with optimistic locking: load,
// apply, recompute the derived rating fields, save. A version conflict
// reloads and replays up to maxSaveAttempts times.
func (s *RestaurantService) mutate(
	ctx context.Context,
	load func(ctx context.Context) (*domain.Restaurant, error),
	apply func(r *domain.Restaurant) error,
) (*domain.Restaurant, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		r, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := apply(r); err != nil {
			return nil, err
		}

		r.RecalculateRating()
		r.UpdatedAt = time.Now().UTC()

		err = s.repo.Save(ctx, r)
		if errors.Is(err, domain.ErrVersionConflict) {
			s.log.Debug().Str("restaurant_id", r.ID).Int("attempt", attempt+1).Msg("version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, domain.ErrVersionConflict
}

func (s *RestaurantService) enqueueCleanup(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.cleanup.Enqueue(ctx, ports.CleanupTask{PublicID: publicID}); err != nil {
		s.log.Error().Err(err).Str("public_id", publicID).Msg("failed to enqueue media cleanup")
	}
}
