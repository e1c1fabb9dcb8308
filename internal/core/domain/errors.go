package domain

import "errors"

// Auth errors.
var (
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials deliberately covers both "no such email" and
	// "wrong password" so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
)

// Restaurant errors.
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewExists       = errors.New("review already submitted for this restaurant")
	ErrReviewForbidden    = errors.New("not the author of this review")
	ErrUnsupportedFormat  = errors.New("unsupported file format: use JPG, PNG or WebP")
	// ErrVersionConflict signals a lost optimistic-lock race on the
	// restaurant document. Services retry; it only escapes after the
	// retry budget is exhausted.
	ErrVersionConflict = errors.New("restaurant was modified concurrently")
)
