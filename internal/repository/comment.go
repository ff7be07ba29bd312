package repository

import (
	"context"
	"time"

	"simplesocial/internal/models"
	"simplesocial/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, postID, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, postID, id, content string, updatedAt time.Time) error
	Delete(ctx context.Context, postID, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, done := observe(ctx, r.trace, "Comment.Create", "comments")
	defer done(&err)

	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID looks a comment up by its id within postID.
func (r *commentRepository) GetByID(ctx context.Context, postID, id string) (_ *models.Comment, err error) {
	ctx, done := observe(ctx, r.trace, "Comment.GetByID", "comments")
	defer done(&err)

	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ? AND post_id = ?", id, postID).Take(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) (_ []*models.Comment, err error) {
	ctx, done := observe(ctx, r.trace, "Comment.ListByPost", "comments")
	defer done(&err)

	comments := []*models.Comment{}
	err = r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, postID, id, content string, updatedAt time.Time) (err error) {
	ctx, done := observe(ctx, r.trace, "Comment.UpdateContent", "comments")
	defer done(&err)

	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND post_id = ?", id, postID).
		Updates(map[string]interface{}{"content": content, "updated_at": updatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, postID, id string) (err error) {
	ctx, done := observe(ctx, r.trace, "Comment.Delete", "comments")
	defer done(&err)

	result := r.db.WithContext(ctx).Where("id = ? AND post_id = ?", id, postID).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByPost removes every comment on postID and reports how many were removed.
func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) (_ int64, err error) {
	ctx, done := observe(ctx, r.trace, "Comment.DeleteByPost", "comments")
	defer done(&err)

	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
