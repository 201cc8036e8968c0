package handler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// errNoUser is returned by requesterID when the context carries no
// authenticated identity; it should be unreachable behind JWTAuth.
var errNoUser = errors.New("no authenticated user in context")

// requesterID extracts the authenticated user id that JWTAuth stored
// in the Echo context.
func requesterID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errNoUser
}

// reqCtx derives a bounded context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}
