package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewReviewRepo(db)

	rv, err := repo.Create(ctx, a.ID, ev.ID, 4, "good show")
	require.NoError(t, err)
	assert.Equal(t, 4, rv.Rating)
	assert.Equal(t, "good show", rv.TextReview)

	_, err = repo.Create(ctx, b.ID, ev.ID, 2, "too loud")
	require.NoError(t, err)

	revs, err := repo.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 2)
}

func TestReviewCreateRejections(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewReviewRepo(db)

	_, err := repo.Create(ctx, a.ID, ev.ID, 0, "invalid")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = repo.Create(ctx, a.ID, ev.ID, 6, "invalid")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = repo.Create(ctx, a.ID, "no-such-event", 3, "lost")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.Create(ctx, a.ID, ev.ID, 5, "first")
	require.NoError(t, err)
	_, err = repo.Create(ctx, a.ID, ev.ID, 1, "second")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	revs, err := repo.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, 5, revs[0].Rating)
}

func TestReviewUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewReviewRepo(db)

	_, err := repo.Create(ctx, a.ID, ev.ID, 3, "okay")
	require.NoError(t, err)

	// Rating changes, text stays.
	five := 5
	got, err := repo.Update(ctx, a.ID, ev.ID, ReviewUpdate{Rating: &five})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "okay", got.TextReview)

	// Empty edit returns the current row.
	same, err := repo.Update(ctx, a.ID, ev.ID, ReviewUpdate{})
	require.NoError(t, err)
	assert.Equal(t, got, same)

	// Out-of-range edits are rejected by the check constraint.
	ten := 10
	_, err = repo.Update(ctx, a.ID, ev.ID, ReviewUpdate{Rating: &ten})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviewUpdateMissingPair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewReviewRepo(db)

	four := 4
	_, err := repo.Update(ctx, a.ID, ev.ID, ReviewUpdate{Rating: &four})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReviewDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewReviewRepo(db)

	_, err := repo.Create(ctx, a.ID, ev.ID, 4, "nice")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, a.ID, ev.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID, ev.ID), sql.ErrNoRows)
}
