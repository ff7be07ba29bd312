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
	"gorm.io/gorm"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Posts().Create(ctx, newPost("p1", "alice", 0)))

	got, err := store.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "content of p1", got.Content)
	assert.True(t, got.CreatedAt.Equal(baseTime))
	assert.Nil(t, got.UpdatedAt)
	assert.Zero(t, got.LikesCount)
	assert.Zero(t, got.CommentsCount)

	_, err = store.Posts().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_Counts(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Posts().Create(ctx, newPost("p1", "alice", 0)))
	require.NoError(t, store.Posts().Create(ctx, newPost("p2", "alice", time.Second)))
	require.NoError(t, store.Comments().Create(ctx, newComment("c1", "p1", time.Minute)))
	require.NoError(t, store.Comments().Create(ctx, newComment("c2", "p1", 2*time.Minute)))
	for _, user := range []string{"bob", "carol", "dave"} {
		_, err := store.Likes().Create(ctx, &models.Like{PostID: "p1", Username: user, CreatedAt: baseTime})
		require.NoError(t, err)
	}

	got, err := store.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)
	assert.Equal(t, 3, got.LikesCount)

	other, err := store.Posts().GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Zero(t, other.CommentsCount)
	assert.Zero(t, other.LikesCount)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	posts, err := store.Posts().List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	require.NoError(t, store.Posts().Create(ctx, newPost("old", "alice", 0)))
	require.NoError(t, store.Posts().Create(ctx, newPost("new", "alice", time.Hour)))
	require.NoError(t, store.Posts().Create(ctx, newPost("mid", "alice", time.Minute)))
	_, err = store.Likes().Create(ctx, &models.Like{PostID: "mid", Username: "bob", CreatedAt: baseTime})
	require.NoError(t, err)

	posts, err = store.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].ID)
	assert.Equal(t, "mid", posts[1].ID)
	assert.Equal(t, "old", posts[2].ID)
	assert.Equal(t, 1, posts[1].LikesCount)
}

func TestPostRepository_UpdateContent(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, store.Posts().Create(ctx, newPost("p1", "alice", 0)))

	edited := baseTime.Add(time.Hour)
	require.NoError(t, store.Posts().UpdateContent(ctx, "p1", "edited", edited))

	got, err := store.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(edited))
	assert.True(t, got.CreatedAt.Equal(baseTime))

	err = store.Posts().UpdateContent(ctx, "missing", "x", edited)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_ExistsAndDelete(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, store.Posts().Create(ctx, newPost("p1", "alice", 0)))

	ok, err := store.Posts().Exists(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Posts().Delete(ctx, "p1"))

	ok, err = store.Posts().Exists(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Posts().Delete(ctx, "p1"), gorm.ErrRecordNotFound)
}

func TestPostRepository_ListPropagatesDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStore(db).Posts()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM comments`)).
		WillReturnError(errors.New("connection reset"))

	posts, err := repo.List(context.Background())
	assert.Nil(t, posts)
	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
