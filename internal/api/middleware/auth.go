package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/api/handler"
	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// Auth validates the bearer token, resolves the account behind it, and
// injects the user into the request context. This is the sole mechanism
// for establishing the current user; no session state is kept between
// requests.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A token for a vanished account reads as unauthenticated,
				// not as a 404.
				return domain.ErrUnauthenticated
			}
			if !user.IsActive {
				return domain.ErrAccountDisabled
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
