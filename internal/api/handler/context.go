package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/core/domain"
)

// userContextKey is where the auth middleware stores the resolved user.
const userContextKey = "user"

// SetCurrentUser attaches the authenticated user to the request context.
// Called only by the auth middleware.
func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(userContextKey, u)
}

// CurrentUser extracts the user resolved by the auth middleware. Its
// presence proves the middleware ran; a miss on a protected route means
// the route was wired without it, so fail closed.
func CurrentUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(userContextKey).(*domain.User)
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}
