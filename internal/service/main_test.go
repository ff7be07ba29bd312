package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"simplesocial/internal/config"
	"simplesocial/internal/database"
	"simplesocial/internal/models"
	"simplesocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:        config.DriverSQLite,
		DBPath:          filepath.Join(t.TempDir(), "service.db"),
		DBBusyTimeoutMS: 1000,
		DBMaxOpenConns:  4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// stepClock returns a clock that starts at baseTime and advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	next := baseTime
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

// sequentialIDs returns an id generator producing prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type services struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
	likes    *LikeService
}

func newServices(t *testing.T, opts ...Option) services {
	t.Helper()
	db := setupTestDB(t)
	store := repository.NewStore(db)
	defaults := []Option{WithClock(stepClock(time.Second)), WithIDGenerator(sequentialIDs("id"))}
	opts = append(defaults, opts...)
	return services{
		db:       db,
		posts:    NewPostService(store, opts...),
		comments: NewCommentService(store, opts...),
		likes:    NewLikeService(store, opts...),
	}
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}
