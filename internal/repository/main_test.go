package repository

import (
	"path/filepath"
	"testing"
	"time"

	"simplesocial/internal/config"
	"simplesocial/internal/database"
	"simplesocial/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB opens a migrated SQLite file private to the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:        config.DriverSQLite,
		DBPath:          filepath.Join(t.TempDir(), "repo.db"),
		DBBusyTimeoutMS: 1000,
		DBMaxOpenConns:  4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newPost(id, username string, offset time.Duration) *models.Post {
	return &models.Post{
		ID:        id,
		Username:  username,
		Content:   "content of " + id,
		CreatedAt: baseTime.Add(offset),
	}
}

func newComment(id, postID string, offset time.Duration) *models.Comment {
	return &models.Comment{
		ID:        id,
		PostID:    postID,
		Username:  "bob",
		Content:   "comment " + id,
		CreatedAt: baseTime.Add(offset),
	}
}
