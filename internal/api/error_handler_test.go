package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the message envelope: %s", rec.Body.String())
	}
	return rec.Code, body.Message
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest},
		{"duplicate review", domain.ErrReviewExists, http.StatusBadRequest},
		{"bad format", domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"disabled account", domain.ErrAccountDisabled, http.StatusUnauthorized},
		{"foreign review", domain.ErrReviewForbidden, http.StatusForbidden},
		{"missing restaurant", domain.ErrRestaurantNotFound, http.StatusNotFound},
		{"missing image", domain.ErrImageNotFound, http.StatusNotFound},
		{"missing review", domain.ErrReviewNotFound, http.StatusNotFound},
		{"lost write race", domain.ErrVersionConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := render(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("code: want %d, got %d", tc.wantCode, code)
			}
			if msg == "" {
				t.Error("message must not be empty")
			}
		})
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	code, msg := render(t, domain.NewValidationError("nom is required", "cuisine is required"))
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if msg != "nom is required; cuisine is required" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := render(t, errors.New("pq: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Errorf("internal details leaked: %q", msg)
	}
}

func TestErrorHandler_CredentialErrorsShareWording(t *testing.T) {
	// "no such account" and "wrong password" collapse upstream into one
	// sentinel, so the response wording is necessarily identical.
	_, msg := render(t, domain.ErrInvalidCredentials)
	if msg != "incorrect email or password" {
		t.Errorf("unexpected wording: %q", msg)
	}
}
