package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hub/internal/config"
	"github.com/iliyamo/event-hub/internal/model"
	"github.com/iliyamo/event-hub/internal/repository"
)

// EventHandler serves public event reads and creator-only mutation.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

type createEventReq struct {
	EventName   string  `json:"event_name"`
	Description string  `json:"description"`
	EventType   *string `json:"event_type"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Picture     *string `json:"picture"`
}

type updateEventReq struct {
	EventName   *string  `json:"event_name"`
	Description *string  `json:"description"`
	EventType   *string  `json:"event_type"`
	Address     *string  `json:"address"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	Date        *string  `json:"date"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Picture     *string  `json:"picture"`
}

// parseDate validates a calendar date in storage format.
func parseDate(s string) (string, bool) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// parseTimeOfDay validates a time of day, accepting HH:MM or
// HH:MM:SS and normalizing to the storage format.
func parseTimeOfDay(s string) (string, bool) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), true
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), true
	}
	return "", false
}

// Create handles POST /v1/events. Field presence and formats are
// validated here; price, capacity and the time ordering are left to
// the check constraints so a violation reads the same no matter which
// path wrote the row.
func (h *EventHandler) Create(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventName == "" || req.Description == "" || req.Address == "" ||
		req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name, description, address, date, start_time and end_time are required"})
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, want YYYY-MM-DD"})
	}
	start, ok := parseTimeOfDay(req.StartTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time format, want HH:MM:SS"})
	}
	end, ok := parseTimeOfDay(req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time format, want HH:MM:SS"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Events.Create(ctx, uid, model.Event{
		EventName:   req.EventName,
		Description: req.Description,
		EventType:   req.EventType,
		Address:     req.Address,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Picture:     req.Picture,
	})
	if err != nil {
		return eventWriteError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// List handles GET /v1/events?limit=&offset=. The default page size
// is config.DefaultEventPageLimit.
func (h *EventHandler) List(c echo.Context) error {
	limit := config.DefaultEventPageLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	offset := 0
	if s := c.QueryParam("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offset"})
		}
		offset = n
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.GetAll(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// ListMine handles GET /v1/my/events and returns the caller's own
// events.
func (h *EventHandler) ListMine(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Update handles PATCH /v1/events/:id. A missing event is 404 and an
// event owned by someone else is 403; the two cases are deliberately
// distinct. Absent fields stay untouched and an empty body returns
// the current row.
func (h *EventHandler) Update(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd := repository.EventUpdate{
		EventName:   nonEmpty(req.EventName),
		Description: nonEmpty(req.Description),
		EventType:   nonEmpty(req.EventType),
		Address:     nonEmpty(req.Address),
		Price:       req.Price,
		Capacity:    req.Capacity,
		Picture:     nonEmpty(req.Picture),
	}
	if req.Date != nil && *req.Date != "" {
		date, ok := parseDate(*req.Date)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, want YYYY-MM-DD"})
		}
		upd.Date = &date
	}
	if req.StartTime != nil && *req.StartTime != "" {
		start, ok := parseTimeOfDay(*req.StartTime)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time format, want HH:MM:SS"})
		}
		upd.StartTime = &start
	}
	if req.EndTime != nil && *req.EndTime != "" {
		end, ok := parseTimeOfDay(*req.EndTime)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time format, want HH:MM:SS"})
		}
		upd.EndTime = &end
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Events.Update(ctx, c.Param("id"), uid, upd)
	if err != nil {
		return eventWriteError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /v1/events/:id. Creator only; dependent
// bookings, reviews and favorites disappear through the cascade.
func (h *EventHandler) Delete(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.Delete(ctx, c.Param("id"), uid); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the event creator"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// eventWriteError maps event write failures to responses. Constraint
// violations are 409 so clients can tell a data conflict from bad
// input they can fix locally.
func eventWriteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the event creator"})
	case errors.Is(err, repository.ErrInvalidCapacity),
		errors.Is(err, repository.ErrInvalidTimeRange),
		errors.Is(err, repository.ErrInvalidPrice):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "event write failed"})
}
