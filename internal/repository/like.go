package repository

import (
	"context"

	"simplesocial/internal/models"
	"simplesocial/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) (bool, error)
	Delete(ctx context.Context, postID, username string) (bool, error)
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

type likeRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// Create inserts the like unless the (post, username) pair already exists.
// It reports whether a new row was written.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) (_ bool, err error) {
	ctx, done := observe(ctx, r.trace, "Like.Create", "likes")
	defer done(&err)

	// INSERT ... ON CONFLICT DO NOTHING keeps concurrent duplicate likes from failing
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "username"}},
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the like if present and reports whether a row was removed.
func (r *likeRepository) Delete(ctx context.Context, postID, username string) (_ bool, err error) {
	ctx, done := observe(ctx, r.trace, "Like.Delete", "likes")
	defer done(&err)

	result := r.db.WithContext(ctx).
		Where("post_id = ? AND username = ?", postID, username).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) DeleteByPost(ctx context.Context, postID string) (_ int64, err error) {
	ctx, done := observe(ctx, r.trace, "Like.DeleteByPost", "likes")
	defer done(&err)

	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{})
	return result.RowsAffected, result.Error
}
