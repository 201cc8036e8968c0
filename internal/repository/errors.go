// Package repository implements the data access layer. This file
// defines the sentinel errors shared across repositories together with
// the translation of raw driver errors into those sentinels. Handlers
// never inspect driver errors directly; they switch on the values
// below (plus sql.ErrNoRows for missing rows) and map each one to an
// HTTP status.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts a mutation on a
// resource owned by a different user. Handlers translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameExists is returned when registering with a username that
// is already taken.
var ErrUsernameExists = errors.New("username already exists")

// Duplicate-pair errors. Each corresponds to the composite unique
// constraint on (user_id, event_id) of its table. Creation races are
// resolved by the constraint itself: the insert is attempted and the
// violation is caught, there is no check-then-insert window.
var (
	ErrDuplicateBooking  = errors.New("event already booked by this user")
	ErrDuplicateReview   = errors.New("event already reviewed by this user")
	ErrDuplicateFavorite = errors.New("event already favorited by this user")
)

// Check-constraint errors raised by event and review writes.
var (
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrInvalidCapacity  = errors.New("capacity must be greater than zero")
	ErrInvalidTimeRange = errors.New("end_time must be after start_time")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// mysql server error numbers for constraint rejections.
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrNoReferencedRow = 1452
	mysqlErrCheckViolated  = 3819
)

// isDuplicateEntry reports whether err is a unique-constraint
// violation. The MySQL error number is checked first; the message
// fallback covers the SQLite backend used by the test suite.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrDuplicateEntry
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// isCheckViolation reports whether err is a check-constraint
// violation, optionally restricted to the named constraint.
func isCheckViolation(err error, constraint string) bool {
	msg := err.Error()
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number != mysqlErrCheckViolated {
		return false
	}
	if me == nil && !strings.Contains(strings.ToLower(msg), "check constraint") {
		return false
	}
	return constraint == "" || strings.Contains(msg, constraint)
}

// isForeignKeyViolation reports whether err means a referenced row
// does not exist. Repositories surface this as sql.ErrNoRows so that
// booking a deleted event reads as "event not found".
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrNoReferencedRow
	}
	return strings.Contains(strings.ToUpper(err.Error()), "FOREIGN KEY")
}

// translateEventConstraint maps a constraint rejection from an event
// insert or update to its domain error. Unknown errors pass through
// unchanged.
func translateEventConstraint(err error) error {
	switch {
	case isCheckViolation(err, "chk_capacity"):
		return ErrInvalidCapacity
	case isCheckViolation(err, "chk_time_range"):
		return ErrInvalidTimeRange
	case isCheckViolation(err, "chk_price"):
		return ErrInvalidPrice
	}
	return err
}
