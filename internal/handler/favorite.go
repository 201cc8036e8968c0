package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hub/internal/repository"
)

// FavoriteHandler serves favorite creation, listing and removal for
// the authenticated user.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f}
}

// Create handles POST /v1/favorites/:event_id. A repeated favorite
// of the same event is a 409, decided by the unique constraint.
func (h *FavoriteHandler) Create(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Favorites.Create(ctx, uid, c.Param("event_id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateFavorite):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event already favorited"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create favorite failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// List handles GET /v1/favorites and returns the caller's favorited
// events joined with their event rows.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Favorites.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Delete handles DELETE /v1/favorites/:event_id.
func (h *FavoriteHandler) Delete(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Favorites.Delete(ctx, uid, c.Param("event_id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
