package service

import (
	"context"

	"simplesocial/internal/models"
	"simplesocial/internal/repository"
)

type CommentService struct {
	store repository.Store
	deps
}

type CreateCommentInput struct {
	PostID   string
	Username string
	Content  string
}

type UpdateCommentInput struct {
	PostID    string
	CommentID string
	Username  string
	Content   string
}

func NewCommentService(store repository.Store, opts ...Option) *CommentService {
	return &CommentService{store: store, deps: newDeps(opts)}
}

// ListComments returns the comments on a post, oldest first. The post's
// existence is only checked when it has no comments.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		comments, err = tx.Comments().ListByPost(ctx, postID)
		if err != nil || len(comments) > 0 {
			return err
		}
		return requirePost(ctx, tx, postID)
	})
	if err != nil {
		return nil, storageError(err, "list comments", "Comment")
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if isBlank(in.Username) || isBlank(in.Content) {
		return nil, models.NewValidationError(errFieldsRequired)
	}

	comment := &models.Comment{
		ID:        s.newID(),
		PostID:    in.PostID,
		Username:  in.Username,
		Content:   in.Content,
		CreatedAt: s.timestamp(),
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		return tx.Comments().Create(ctx, comment)
	})
	if err != nil {
		return nil, storageError(err, "create comment", "Comment")
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		comment, err = tx.Comments().GetByID(ctx, postID, commentID)
		return err
	})
	if err != nil {
		return nil, storageError(err, "get comment", "Comment")
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if isBlank(in.Username) || isBlank(in.Content) {
		return nil, models.NewValidationError(errFieldsRequired)
	}

	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Comments().GetByID(ctx, in.PostID, in.CommentID)
		if err != nil {
			return err
		}
		if err := s.author.CheckAuthor(ctx, existing.Username, in.Username); err != nil {
			return err
		}
		if err := tx.Comments().UpdateContent(ctx, in.PostID, in.CommentID, in.Content, s.timestamp()); err != nil {
			return err
		}
		comment, err = tx.Comments().GetByID(ctx, in.PostID, in.CommentID)
		return err
	})
	if err != nil {
		return nil, storageError(err, "update comment", "Comment")
	}
	return comment, nil
}

// DeleteComment removes the comment and returns it as it was before deletion.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		comment, err = tx.Comments().GetByID(ctx, postID, commentID)
		if err != nil {
			return err
		}
		return tx.Comments().Delete(ctx, postID, commentID)
	})
	if err != nil {
		return nil, storageError(err, "delete comment", "Comment")
	}
	return comment, nil
}

func requirePost(ctx context.Context, tx repository.Store, postID string) error {
	exists, err := tx.Posts().Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post")
	}
	return nil
}
