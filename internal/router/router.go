package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/event-hub/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/event-hub/internal/middleware" // import middleware for JWT authentication
)

// Handlers bundles every handler the router needs so main can wire the
// whole API with a single call per group.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Events    *handler.EventHandler
	Bookings  *handler.BookingHandler
	Reviews   *handler.ReviewHandler
	Favorites *handler.FavoriteHandler
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Register and login issue tokens, so they live outside the protected group.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints.  These return
// data any guest may see: the event catalogue, per-event reviews and user
// profiles (without credentials).  The optional cache middleware is applied
// to the listing endpoints; pass nil to skip caching.
func RegisterPublic(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if cache != nil {
		mw = append(mw, cache)
	}

	// Event catalogue, paginated via ?limit= and ?offset=.
	e.GET("/v1/events", h.Events.List, mw...)
	e.GET("/v1/events/:id", h.Events.Get, mw...)
	// All reviews left on a specific event.
	e.GET("/v1/events/:id/reviews", h.Reviews.ListByEvent, mw...)

	// User directory; password hashes are never serialized.
	e.GET("/v1/users", h.Users.List, mw...)
	e.GET("/v1/users/username/:username", h.Users.GetByUsername)
	e.GET("/v1/users/:id", h.Users.Get)
}

// RegisterProtected registers every endpoint that requires a valid access
// token.  All handlers on this group see the requester's id under the
// "user_id" context key set by the JWT middleware.
func RegisterProtected(e *echo.Echo, h Handlers, jwtSecret string) {
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	// Account management: only the owner of an account may change or
	// delete it.
	auth.PATCH("/users/:id", h.Users.Update)
	auth.DELETE("/users/:id", h.Users.Delete)

	// Event management: creation records the requester as owner; updates
	// and deletes are owner-only.
	auth.POST("/events", h.Events.Create)
	auth.GET("/my/events", h.Events.ListMine)
	auth.PATCH("/events/:id", h.Events.Update)
	auth.DELETE("/events/:id", h.Events.Delete)

	// Bookings are keyed by (user, event); listing returns the booked events.
	auth.POST("/bookings", h.Bookings.Create)
	auth.GET("/bookings", h.Bookings.List)
	auth.DELETE("/bookings/:event_id", h.Bookings.Delete)

	// One review per user per event; updates and deletes address the
	// requester's own review of the event.
	auth.POST("/events/:id/reviews", h.Reviews.Create)
	auth.PATCH("/events/:id/review", h.Reviews.Update)
	auth.DELETE("/events/:id/review", h.Reviews.Delete)

	// Favorites mirror bookings: pair-keyed add, list and remove.
	auth.POST("/favorites/:event_id", h.Favorites.Create)
	auth.GET("/favorites", h.Favorites.List)
	auth.DELETE("/favorites/:event_id", h.Favorites.Delete)
}
