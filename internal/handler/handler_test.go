package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-hub/internal/config"
	"github.com/iliyamo/event-hub/internal/database"
	"github.com/iliyamo/event-hub/internal/handler"
	"github.com/iliyamo/event-hub/internal/repository"
	"github.com/iliyamo/event-hub/internal/router"
)

const testSecret = "handler-test-secret"

// newTestApp wires the full route table against an in-memory SQLite
// database, so tests exercise the same middleware chain and status
// mapping as production. Caching and rate limiting are left out.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	cfg := config.Config{
		JWTSecret:     testSecret,
		TokenTTLHours: 168,
		BcryptCost:    bcrypt.MinCost,
	}

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(cfg, users),
		Events:    handler.NewEventHandler(events),
		Bookings:  handler.NewBookingHandler(repository.NewBookingRepo(db), events),
		Reviews:   handler.NewReviewHandler(repository.NewReviewRepo(db)),
		Favorites: handler.NewFavoriteHandler(repository.NewFavoriteRepo(db)),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterPublic(e, h, nil)
	router.RegisterProtected(e, h, cfg.JWTSecret)
	return e
}

// doJSON performs a request against the app and returns the recorder.
// An empty token leaves the Authorization header unset.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// register creates an account through the API and returns its id and a
// usable bearer token. The password is derived from the username.
func register(t *testing.T, e *echo.Echo, username string) (id, token string) {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"name":     "Test " + username,
		"username": username,
		"password": "pw-" + username,
		"location": "Berlin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func eventBody(name, date string) map[string]any {
	return map[string]any{
		"event_name":  name,
		"description": "a test event",
		"address":     "1 Test Street",
		"price":       12.5,
		"capacity":    100,
		"date":        date,
		"start_time":  "18:00",
		"end_time":    "21:00",
	}
}

// createEvent creates an event through the API and returns its id.
func createEvent(t *testing.T, e *echo.Echo, token, name, date string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/v1/events", token, eventBody(name, date))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}
