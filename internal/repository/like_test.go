package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"simplesocial/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.Likes().Create(ctx, &models.Like{PostID: "p1", Username: "bob", CreatedAt: baseTime})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.Likes().Create(ctx, &models.Like{PostID: "p1", Username: "bob", CreatedAt: baseTime.Add(time.Minute)})
	require.NoError(t, err)
	assert.False(t, created)

	var rows []models.Like
	require.NoError(t, db.Where("post_id = ?", "p1").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].CreatedAt.Equal(baseTime), "the first like is kept")
}

func TestLikeRepository_Delete(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	removed, err := store.Likes().Delete(ctx, "p1", "bob")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.Likes().Create(ctx, &models.Like{PostID: "p1", Username: "bob", CreatedAt: baseTime})
	require.NoError(t, err)
	_, err = store.Likes().Create(ctx, &models.Like{PostID: "p1", Username: "carol", CreatedAt: baseTime})
	require.NoError(t, err)

	removed, err = store.Likes().Delete(ctx, "p1", "bob")
	require.NoError(t, err)
	assert.True(t, removed)

	n, err := store.Likes().DeleteByPost(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLikeRepository_CreatePropagatesDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStore(db).Likes()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	created, err := repo.Create(context.Background(), &models.Like{PostID: "p1", Username: "bob", CreatedAt: baseTime})
	assert.False(t, created)
	assert.EqualError(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
