package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

type stubReviewService struct {
	stubRestaurantService
	addFn func(ctx context.Context, id, userID string, note float64, comment string) (*domain.Restaurant, error)
	updFn func(ctx context.Context, id, reviewID, userID string, in ports.ReviewUpdate) (*domain.Restaurant, error)
	delFn func(ctx context.Context, id, reviewID, userID string) (*domain.Restaurant, error)
}

func (s *stubReviewService) AddReview(ctx context.Context, id, userID string, note float64, comment string) (*domain.Restaurant, error) {
	return s.addFn(ctx, id, userID, note, comment)
}

func (s *stubReviewService) UpdateReview(ctx context.Context, id, reviewID, userID string, in ports.ReviewUpdate) (*domain.Restaurant, error) {
	return s.updFn(ctx, id, reviewID, userID, in)
}

func (s *stubReviewService) DeleteReview(ctx context.Context, id, reviewID, userID string) (*domain.Restaurant, error) {
	return s.delFn(ctx, id, reviewID, userID)
}

func TestReviewHandler_Add_ZeroNoteAccepted(t *testing.T) {
	var gotNote float64 = -1
	h := NewReviewHandler(&stubReviewService{
		addFn: func(_ context.Context, id, userID string, note float64, comment string) (*domain.Restaurant, error) {
			gotNote = note
			return &domain.Restaurant{ID: id}, nil
		},
	})

	// A present-but-zero note must reach the service as 0, not be
	// mistaken for a missing field.
	c, rec := authedContext(t, http.MethodPost, "/api/restaurants/rest_1/avis", `{"note":0,"commentaire":"bof"}`)
	c.SetParamNames("id")
	c.SetParamValues("rest_1")

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotNote != 0 {
		t.Errorf("note: expected 0, got %v", gotNote)
	}
}

func TestReviewHandler_Add_MissingNoteRejected(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		addFn: func(_ context.Context, _, _ string, _ float64, _ string) (*domain.Restaurant, error) {
			t.Fatal("service must not be reached without a note")
			return nil, nil
		},
	})

	c, _ := authedContext(t, http.MethodPost, "/api/restaurants/rest_1/avis", `{"commentaire":"pas de note"}`)
	c.SetParamNames("id")
	c.SetParamValues("rest_1")

	err := h.Add(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestReviewHandler_Update_OmittedFieldsStayNil(t *testing.T) {
	var got ports.ReviewUpdate
	h := NewReviewHandler(&stubReviewService{
		updFn: func(_ context.Context, id, reviewID, userID string, in ports.ReviewUpdate) (*domain.Restaurant, error) {
			if id != "rest_1" || reviewID != "rev_1" || userID != "user_1" {
				t.Fatalf("wrong identity: %s %s %s", id, reviewID, userID)
			}
			got = in
			return &domain.Restaurant{ID: id}, nil
		},
	})

	c, _ := authedContext(t, http.MethodPut, "/api/restaurants/rest_1/avis/rev_1", `{"commentaire":"mieux"}`)
	c.SetParamNames("id", "avisId")
	c.SetParamValues("rest_1", "rev_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Note != nil {
		t.Errorf("omitted note must stay nil, got %v", *got.Note)
	}
	if got.Comment == nil || *got.Comment != "mieux" {
		t.Errorf("comment pointer wrong: %v", got.Comment)
	}
}

func TestReviewHandler_Delete_ForbiddenFlowsThrough(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		delFn: func(_ context.Context, _, _, _ string) (*domain.Restaurant, error) {
			return nil, domain.ErrReviewForbidden
		},
	})

	c, _ := authedContext(t, http.MethodDelete, "/api/restaurants/rest_1/avis/rev_1", "")
	c.SetParamNames("id", "avisId")
	c.SetParamValues("rest_1", "rev_1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrReviewForbidden) {
		t.Fatalf("expected ErrReviewForbidden, got %v", err)
	}
}
