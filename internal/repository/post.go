package repository

import (
	"context"
	"time"

	"simplesocial/internal/models"
	"simplesocial/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, done := observe(ctx, r.trace, "Post.Create", "posts")
	defer done(&err)

	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID returns gorm.ErrRecordNotFound when no post has the id.
func (r *postRepository) GetByID(ctx context.Context, id string) (_ *models.Post, err error) {
	ctx, done := observe(ctx, r.trace, "Post.GetByID", "posts")
	defer done(&err)

	var post models.Post
	if err := withCounts(r.db.WithContext(ctx)).Where("posts.id = ?", id).Take(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) (_ []*models.Post, err error) {
	ctx, done := observe(ctx, r.trace, "Post.List", "posts")
	defer done(&err)

	posts := []*models.Post{}
	err = withCounts(r.db.WithContext(ctx)).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Exists(ctx context.Context, id string) (_ bool, err error) {
	ctx, done := observe(ctx, r.trace, "Post.Exists", "posts")
	defer done(&err)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateContent returns gorm.ErrRecordNotFound when no row was changed.
func (r *postRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (err error) {
	ctx, done := observe(ctx, r.trace, "Post.UpdateContent", "posts")
	defer done(&err)

	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "updated_at": updatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the post row only. Callers delete dependent rows first.
func (r *postRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := observe(ctx, r.trace, "Post.Delete", "posts")
	defer done(&err)

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// withCounts selects the post columns together with like and comment counts.
func withCounts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count")
}
