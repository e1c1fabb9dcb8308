package domain

import (
	"math"
	"time"
)

// Address is the postal address of a restaurant. All three parts are
// required at creation time.
type Address struct {
	Street     string `json:"rue"`
	City       string `json:"ville"`
	PostalCode string `json:"codePostal"`
}

// Image references an asset hosted by the media delegate. The PublicID is
// the delegate-side identifier needed to destroy the asset later.
type Image struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Review is a rating left by a user on a restaurant. Reviews have no
// identity outside their parent document: one entry per user, mutable and
// deletable only by its author.
type Review struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	Note    float64   `json:"note"`
	Comment string    `json:"commentaire,omitempty"`
	Date    time.Time `json:"date"`
}

// Restaurant is the aggregate root. Images and reviews are embedded
// sub-lists owned exclusively by the document; AverageRating and
// ReviewCount are derived from Reviews and must never be set directly;
// call RecalculateRating before every save.
type Restaurant struct {
	ID            string    `json:"id"`
	Name          string    `json:"nom"`
	Cuisine       string    `json:"cuisine"`
	Address       Address   `json:"adresse"`
	Phone         string    `json:"telephone,omitempty"`
	Description   string    `json:"description,omitempty"`
	OwnerID       string    `json:"userId"`
	Images        []Image   `json:"images"`
	Reviews       []Review  `json:"avis"`
	AverageRating float64   `json:"noteMoyenne"`
	ReviewCount   int       `json:"nombreAvis"`
	Version       int64     `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RecalculateRating re-derives AverageRating (mean of all notes, rounded
// to one decimal) and ReviewCount from the current review list. Both are
// zero when there are no reviews. Always full recomputation, never
// incremental, so the derived fields cannot drift.
func (r *Restaurant) RecalculateRating() {
	if len(r.Reviews) == 0 {
		r.AverageRating = 0
		r.ReviewCount = 0
		return
	}

	var sum float64
	for _, a := range r.Reviews {
		sum += a.Note
	}
	r.AverageRating = math.Round(sum/float64(len(r.Reviews))*10) / 10
	r.ReviewCount = len(r.Reviews)
}

// ReviewByUser returns the review left by the given user, if any.
func (r *Restaurant) ReviewByUser(userID string) (*Review, bool) {
	for i := range r.Reviews {
		if r.Reviews[i].UserID == userID {
			return &r.Reviews[i], true
		}
	}
	return nil, false
}

// ReviewByID returns the review with the given embedded id, if any.
func (r *Restaurant) ReviewByID(id string) (*Review, bool) {
	for i := range r.Reviews {
		if r.Reviews[i].ID == id {
			return &r.Reviews[i], true
		}
	}
	return nil, false
}

// RemoveReview drops the review with the given id and reports whether an
// entry was removed.
func (r *Restaurant) RemoveReview(id string) bool {
	for i := range r.Reviews {
		if r.Reviews[i].ID == id {
			r.Reviews = append(r.Reviews[:i], r.Reviews[i+1:]...)
			return true
		}
	}
	return false
}

// ImageByRef finds an embedded image by entry id or by delegate public id;
// either identifier matches.
func (r *Restaurant) ImageByRef(ref string) (*Image, bool) {
	for i := range r.Images {
		if r.Images[i].ID == ref || r.Images[i].PublicID == ref {
			return &r.Images[i], true
		}
	}
	return nil, false
}

// RemoveImage drops the embedded image matching ref (entry id or public
// id) and returns the removed entry.
func (r *Restaurant) RemoveImage(ref string) (Image, bool) {
	for i := range r.Images {
		if r.Images[i].ID == ref || r.Images[i].PublicID == ref {
			img := r.Images[i]
			r.Images = append(r.Images[:i], r.Images[i+1:]...)
			return img, true
		}
	}
	return Image{}, false
}
