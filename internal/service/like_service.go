package service

import (
	"context"

	"simplesocial/internal/models"
	"simplesocial/internal/repository"
)

type LikeService struct {
	store repository.Store
	deps
}

type LikeInput struct {
	PostID   string
	Username string
}

func NewLikeService(store repository.Store, opts ...Option) *LikeService {
	return &LikeService{store: store, deps: newDeps(opts)}
}

// LikePost records a like for (PostID, Username). Liking twice is not an error;
// created reports whether a new like was stored. The returned CreatedAt is the
// time of this call either way.
func (s *LikeService) LikePost(ctx context.Context, in LikeInput) (like *models.Like, created bool, err error) {
	if isBlank(in.Username) {
		return nil, false, models.NewValidationError("username is required")
	}

	like = &models.Like{
		PostID:    in.PostID,
		Username:  in.Username,
		CreatedAt: s.timestamp(),
	}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		var err error
		created, err = tx.Likes().Create(ctx, like)
		return err
	})
	if err != nil {
		return nil, false, storageError(err, "like post", "Post")
	}
	return like, created, nil
}

// UnlikePost removes the like if there is one. removed is false when the
// username had not liked the post.
func (s *LikeService) UnlikePost(ctx context.Context, in LikeInput) (removed bool, err error) {
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		var err error
		removed, err = tx.Likes().Delete(ctx, in.PostID, in.Username)
		return err
	})
	if err != nil {
		return false, storageError(err, "unlike post", "Post")
	}
	return removed, nil
}
