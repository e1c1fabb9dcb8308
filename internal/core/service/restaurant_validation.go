package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// validateRestaurantInput checks the creation invariants: name, cuisine
// and the full address are required. All offending fields are reported
// together.
func validateRestaurantInput(in ports.RestaurantInput) error {
	var msgs []string
	if strings.TrimSpace(in.Name) == "" {
		msgs = append(msgs, "nom is required")
	}
	if strings.TrimSpace(in.Cuisine) == "" {
		msgs = append(msgs, "cuisine is required")
	}
	msgs = append(msgs, validateAddress(in.Address)...)
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

// validateRestaurantUpdate rejects partial updates that would blank a
// required field or supply an incomplete address.
func validateRestaurantUpdate(in ports.RestaurantUpdate) error {
	var msgs []string
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		msgs = append(msgs, "nom cannot be empty")
	}
	if in.Cuisine != nil && strings.TrimSpace(*in.Cuisine) == "" {
		msgs = append(msgs, "cuisine cannot be empty")
	}
	if in.Address != nil {
		msgs = append(msgs, validateAddress(*in.Address)...)
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

func validateAddress(a ports.AddressInput) []string {
	var msgs []string
	if strings.TrimSpace(a.Street) == "" {
		msgs = append(msgs, "adresse.rue is required")
	}
	if strings.TrimSpace(a.City) == "" {
		msgs = append(msgs, "adresse.ville is required")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		msgs = append(msgs, "adresse.codePostal is required")
	}
	return msgs
}

func validateNote(note float64) error {
	if note < 0 || note > 5 {
		return domain.Validationf("note must be between 0 and 5")
	}
	return nil
}

// newEmbeddedID returns a 24-hex-char identifier for embedded images and
// reviews, shaped like the document ids so either can be used in URLs.
func newEmbeddedID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
