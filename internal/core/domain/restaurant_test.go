package domain

import (
	"testing"
	"time"
)

func TestRecalculateRating_Empty(t *testing.T) {
	r := &Restaurant{
		AverageRating: 4.5, // stale derived value
		ReviewCount:   3,
	}

	r.RecalculateRating()

	if r.AverageRating != 0 {
		t.Errorf("expected average 0 with no reviews, got %v", r.AverageRating)
	}
	if r.ReviewCount != 0 {
		t.Errorf("expected count 0 with no reviews, got %d", r.ReviewCount)
	}
}

func TestRecalculateRating_RoundsToOneDecimal(t *testing.T) {
	cases := []struct {
		name      string
		notes     []float64
		wantAvg   float64
		wantCount int
	}{
		{"single", []float64{4}, 4, 1},
		{"mean of 5 and 3", []float64{5, 3}, 4, 2},
		{"thirds round down", []float64{5, 4, 4}, 4.3, 3},
		{"thirds round up", []float64{5, 5, 4}, 4.7, 3},
		{"zero is a valid note", []float64{0, 5}, 2.5, 2},
		{"all zeros", []float64{0, 0}, 0, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Restaurant{}
			for i, n := range tc.notes {
				r.Reviews = append(r.Reviews, Review{
					ID:     string(rune('a' + i)),
					UserID: string(rune('u' + i)),
					Note:   n,
					Date:   time.Now(),
				})
			}

			r.RecalculateRating()

			if r.AverageRating != tc.wantAvg {
				t.Errorf("average: want %v, got %v", tc.wantAvg, r.AverageRating)
			}
			if r.ReviewCount != tc.wantCount {
				t.Errorf("count: want %d, got %d", tc.wantCount, r.ReviewCount)
			}
		})
	}
}

func TestReviewByUser(t *testing.T) {
	r := &Restaurant{Reviews: []Review{
		{ID: "r1", UserID: "u1", Note: 4},
		{ID: "r2", UserID: "u2", Note: 2},
	}}

	got, ok := r.ReviewByUser("u2")
	if !ok {
		t.Fatal("expected to find u2's review")
	}
	if got.ID != "r2" {
		t.Errorf("expected r2, got %s", got.ID)
	}

	if _, ok := r.ReviewByUser("u3"); ok {
		t.Error("u3 has no review, expected miss")
	}
}

func TestRemoveReview(t *testing.T) {
	r := &Restaurant{Reviews: []Review{
		{ID: "r1", UserID: "u1"},
		{ID: "r2", UserID: "u2"},
	}}

	if !r.RemoveReview("r1") {
		t.Fatal("expected removal of r1")
	}
	if len(r.Reviews) != 1 || r.Reviews[0].ID != "r2" {
		t.Errorf("unexpected remaining reviews: %+v", r.Reviews)
	}
	if r.RemoveReview("r1") {
		t.Error("removing again must report false")
	}
}

func TestRemoveImage_MatchesEitherIdentifier(t *testing.T) {
	fresh := func() *Restaurant {
		return &Restaurant{Images: []Image{
			{ID: "img1", URL: "https://cdn/a.jpg", PublicID: "restaurants/a"},
			{ID: "img2", URL: "https://cdn/b.jpg", PublicID: "restaurants/b"},
		}}
	}

	r := fresh()
	removed, ok := r.RemoveImage("img2")
	if !ok || removed.PublicID != "restaurants/b" {
		t.Errorf("by entry id: ok=%v removed=%+v", ok, removed)
	}

	r = fresh()
	removed, ok = r.RemoveImage("restaurants/a")
	if !ok || removed.ID != "img1" {
		t.Errorf("by public id: ok=%v removed=%+v", ok, removed)
	}

	r = fresh()
	if _, ok := r.RemoveImage("nope"); ok {
		t.Error("unknown ref must not remove anything")
	}
	if len(r.Images) != 2 {
		t.Errorf("image list must be untouched on miss, got %d entries", len(r.Images))
	}
}
