package ports

import (
	"context"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService implements registration and login. Both return a freshly
// issued bearer token alongside the user.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenService issues and verifies signed identity tokens. The payload
// carries only the user id.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
