package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hub/internal/repository"
)

// ReviewHandler serves review reads and author-only mutation. Edits
// and deletes address "the caller's review of this event" by pair, so
// there is no review id in any route.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(r *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r}
}

type createReviewReq struct {
	Rating     int    `json:"rating"`
	TextReview string `json:"text_review"`
}

type updateReviewReq struct {
	Rating     *int    `json:"rating"`
	TextReview *string `json:"text_review"`
}

// ListByEvent handles GET /v1/events/:id/reviews.
func (h *ReviewHandler) ListByEvent(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reviews, err := h.Reviews.ListByEvent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

// Create handles POST /v1/events/:id/reviews. Rating bounds are the
// database's chk_rating; a second review of the same event by the
// same user is rejected by uniq_review.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating == 0 || req.TextReview == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating and text_review are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Reviews.Create(ctx, uid, c.Param("id"), req.Rating, req.TextReview)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateReview):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event already reviewed"})
		case errors.Is(err, repository.ErrInvalidRating):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, rv)
}

// Update handles PATCH /v1/events/:id/review, editing the caller's
// review of the event. At least one of rating or text_review must be
// present; a missing review for the pair is 404.
func (h *ReviewHandler) Update(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating == nil && (req.TextReview == nil || *req.TextReview == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating or text_review is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Reviews.Update(ctx, uid, c.Param("id"), repository.ReviewUpdate{
		Rating:     req.Rating,
		TextReview: nonEmpty(req.TextReview),
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case errors.Is(err, repository.ErrInvalidRating):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}
	return c.JSON(http.StatusOK, rv)
}

// Delete handles DELETE /v1/events/:id/review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reviews.Delete(ctx, uid, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
