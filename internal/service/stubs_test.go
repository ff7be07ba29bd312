package service

import (
	"context"
	"time"

	"simplesocial/internal/models"
	"simplesocial/internal/repository"

	"gorm.io/gorm"
)

// storeStub is a stub for repository.Store whose Transaction runs fn inline.
type storeStub struct {
	posts    *postRepoStub
	comments *commentRepoStub
	likes    *likeRepoStub
	txCalls  int
}

func newStoreStub() *storeStub {
	return &storeStub{
		posts:    noopPostRepo(),
		comments: noopCommentRepo(),
		likes:    noopLikeRepo(),
	}
}

func (s *storeStub) Posts() repository.PostRepository       { return s.posts }
func (s *storeStub) Comments() repository.CommentRepository { return s.comments }
func (s *storeStub) Likes() repository.LikeRepository       { return s.likes }
func (s *storeStub) Transaction(_ context.Context, fn func(repository.Store) error) error {
	s.txCalls++
	return fn(s)
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, string) (*models.Post, error)
	listFn          func(context.Context) ([]*models.Post, error)
	existsFn        func(context.Context, string) (bool, error)
	updateContentFn func(context.Context, string, string, time.Time) error
	deleteFn        func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Exists(ctx context.Context, id string) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	return s.updateContentFn(ctx, id, content, updatedAt)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(context.Context, string) (*models.Post, error) { return nil, gorm.ErrRecordNotFound },
		listFn:          func(context.Context) ([]*models.Post, error) { return []*models.Post{}, nil },
		existsFn:        func(context.Context, string) (bool, error) { return true, nil },
		updateContentFn: func(context.Context, string, string, time.Time) error { return nil },
		deleteFn:        func(context.Context, string) error { return nil },
	}
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, string, string) (*models.Comment, error)
	listByPostFn    func(context.Context, string) ([]*models.Comment, error)
	updateContentFn func(context.Context, string, string, string, time.Time) error
	deleteFn        func(context.Context, string, string) error
	deleteByPostFn  func(context.Context, string) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, postID, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, postID, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) UpdateContent(ctx context.Context, postID, id, content string, updatedAt time.Time) error {
	return s.updateContentFn(ctx, postID, id, content, updatedAt)
}
func (s *commentRepoStub) Delete(ctx context.Context, postID, id string) error {
	return s.deleteFn(ctx, postID, id)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(context.Context, string, string) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		},
		listByPostFn:    func(context.Context, string) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		updateContentFn: func(context.Context, string, string, string, time.Time) error { return nil },
		deleteFn:        func(context.Context, string, string) error { return nil },
		deleteByPostFn:  func(context.Context, string) (int64, error) { return 0, nil },
	}
}

type likeRepoStub struct {
	createFn       func(context.Context, *models.Like) (bool, error)
	deleteFn       func(context.Context, string, string) (bool, error)
	deleteByPostFn func(context.Context, string) (int64, error)
}

func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) (bool, error) {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, postID, username string) (bool, error) {
	return s.deleteFn(ctx, postID, username)
}
func (s *likeRepoStub) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:       func(context.Context, *models.Like) (bool, error) { return true, nil },
		deleteFn:       func(context.Context, string, string) (bool, error) { return false, nil },
		deleteByPostFn: func(context.Context, string) (int64, error) { return 0, nil },
	}
}
