package service

import (
	"context"

	"simplesocial/internal/models"
	"simplesocial/internal/repository"
)

const errFieldsRequired = "username and content are required"

type PostService struct {
	store repository.Store
	deps
}

type CreatePostInput struct {
	Username string
	Content  string
}

type UpdatePostInput struct {
	PostID   string
	Username string
	Content  string
}

func NewPostService(store repository.Store, opts ...Option) *PostService {
	return &PostService{store: store, deps: newDeps(opts)}
}

// ListPosts returns every post, newest first, with like and comment counts.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		posts, err = tx.Posts().List(ctx)
		return err
	})
	if err != nil {
		return nil, storageError(err, "list posts", "Post")
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if isBlank(in.Username) || isBlank(in.Content) {
		return nil, models.NewValidationError(errFieldsRequired)
	}

	post := &models.Post{
		ID:        s.newID(),
		Username:  in.Username,
		Content:   in.Content,
		CreatedAt: s.timestamp(),
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Posts().Create(ctx, post)
	})
	if err != nil {
		return nil, storageError(err, "create post", "Post")
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	var post *models.Post
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		post, err = tx.Posts().GetByID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, storageError(err, "get post", "Post")
	}
	return post, nil
}

// UpdatePost replaces the content of a post when the AuthorCheck accepts in.Username.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if isBlank(in.Username) || isBlank(in.Content) {
		return nil, models.NewValidationError(errFieldsRequired)
	}

	var post *models.Post
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Posts().GetByID(ctx, in.PostID)
		if err != nil {
			return err
		}
		if err := s.author.CheckAuthor(ctx, existing.Username, in.Username); err != nil {
			return err
		}
		if err := tx.Posts().UpdateContent(ctx, in.PostID, in.Content, s.timestamp()); err != nil {
			return err
		}
		post, err = tx.Posts().GetByID(ctx, in.PostID)
		return err
	})
	if err != nil {
		return nil, storageError(err, "update post", "Post")
	}
	return post, nil
}

// DeletePost removes the post together with its comments and likes.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		exists, err := tx.Posts().Exists(ctx, postID)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewNotFoundError("Post")
		}
		if _, err := tx.Comments().DeleteByPost(ctx, postID); err != nil {
			return err
		}
		if _, err := tx.Likes().DeleteByPost(ctx, postID); err != nil {
			return err
		}
		return tx.Posts().Delete(ctx, postID)
	})
	if err != nil {
		return storageError(err, "delete post", "Post")
	}
	return nil
}
