package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/event-hub/internal/model"
)

// ReviewRepo provides persistence for the reviews table. Edits and
// deletes are keyed on the (user_id, event_id) pair so a user can
// only ever touch their own review of an event.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = "id,user_id,event_id,rating,text_review,created_at"

// ReviewUpdate carries the optional fields of a partial review edit.
type ReviewUpdate struct {
	Rating     *int
	TextReview *string
}

// Create adds a review for an event. Duplicate reviews by the same
// user are rejected by the uniq_review constraint, an out-of-range
// rating by chk_rating, and a missing event by the foreign key.
func (r *ReviewRepo) Create(ctx context.Context, userID, eventID string, rating int, text string) (model.Review, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (id, user_id, event_id, rating, text_review) VALUES (?,?,?,?,?)",
		id, userID, eventID, rating, text)
	if err != nil {
		switch {
		case isDuplicateEntry(err):
			return model.Review{}, ErrDuplicateReview
		case isCheckViolation(err, "chk_rating"):
			return model.Review{}, ErrInvalidRating
		case isForeignKeyViolation(err):
			return model.Review{}, sql.ErrNoRows
		}
		return model.Review{}, err
	}
	return r.getByID(ctx, id)
}

// ListByEvent returns all reviews for an event, newest first.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE event_id=? ORDER BY created_at DESC", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.EventID, &rv.Rating, &rv.TextReview, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// GetByPair fetches the review the user left on an event, if any.
func (r *ReviewRepo) GetByPair(ctx context.Context, userID, eventID string) (model.Review, error) {
	var rv model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id=? AND event_id=? LIMIT 1",
		userID, eventID).
		Scan(&rv.ID, &rv.UserID, &rv.EventID, &rv.Rating, &rv.TextReview, &rv.CreatedAt)
	return rv, err
}

// Update edits the caller's review of an event. Fields left nil are
// untouched; an empty field set returns the current row. A missing
// row for the pair yields sql.ErrNoRows.
func (r *ReviewRepo) Update(ctx context.Context, userID, eventID string, upd ReviewUpdate) (model.Review, error) {
	set := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if upd.Rating != nil {
		set = append(set, "rating=?")
		args = append(args, *upd.Rating)
	}
	if upd.TextReview != nil {
		set = append(set, "text_review=?")
		args = append(args, *upd.TextReview)
	}
	if len(set) == 0 {
		return r.GetByPair(ctx, userID, eventID)
	}
	// Confirm the row exists first so a no-op update (identical
	// values) is not mistaken for a missing review.
	if _, err := r.GetByPair(ctx, userID, eventID); err != nil {
		return model.Review{}, err
	}
	args = append(args, userID, eventID)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET "+strings.Join(set, ", ")+" WHERE user_id=? AND event_id=?", args...)
	if err != nil {
		if isCheckViolation(err, "chk_rating") {
			return model.Review{}, ErrInvalidRating
		}
		return model.Review{}, err
	}
	return r.GetByPair(ctx, userID, eventID)
}

// Delete removes the caller's review of an event. Returns
// sql.ErrNoRows when the pair has no review.
func (r *ReviewRepo) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM reviews WHERE user_id=? AND event_id=?", userID, eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ReviewRepo) getByID(ctx context.Context, id string) (model.Review, error) {
	var rv model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1", id).
		Scan(&rv.ID, &rv.UserID, &rv.EventID, &rv.Rating, &rv.TextReview, &rv.CreatedAt)
	return rv, err
}
