package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hub/internal/queue"
	"github.com/iliyamo/event-hub/internal/repository"
	queue_publisher "github.com/iliyamo/event-hub/internal/service"
)

// BookingHandler serves booking creation, listing and cancellation.
// All operations are keyed on the authenticated user, so a booking is
// only ever visible to and cancelable by the user who made it.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
}

func NewBookingHandler(b *repository.BookingRepo, e *repository.EventRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Events: e}
}

type createBookingReq struct {
	EventID string `json:"event_id"`
}

// Create handles POST /v1/bookings. The duplicate-pair and missing-
// event cases both come out of the single insert; there is no
// preliminary existence check. A successful booking is announced on
// the broker best-effort.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil || req.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.Create(ctx, uid, req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event already booked"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Announce the booking for downstream consumers. Failures are
	// logged inside the publisher and never fail the request.
	ev := queue.BookingCreatedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		EventID:   b.EventID,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e, err := h.Events.GetByID(ctx, b.EventID); err == nil {
		ev.EventName = e.EventName
		ev.EventDate = e.Date
	}
	go func() {
		if err := queue_publisher.PublishBookingCreated(ev); err != nil {
			log.Printf("booking %s: publish failed: %v", b.ID, err)
		}
	}()

	return c.JSON(http.StatusCreated, b)
}

// List handles GET /v1/bookings and returns the caller's booked
// events joined with their event rows.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Delete handles DELETE /v1/bookings/:event_id, cancelling the
// caller's booking for that event. No booking for the pair is 404.
func (h *BookingHandler) Delete(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.Delete(ctx, uid, c.Param("event_id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
