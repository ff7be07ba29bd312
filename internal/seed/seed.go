// Package seed creates demo posts, comments and likes. Everything is written
// through the services, so seeded data obeys the same rules as API traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"simplesocial/internal/middleware"
	"simplesocial/internal/models"
	"simplesocial/internal/repository"
	"simplesocial/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data Seed creates.
type Options struct {
	Users    int   // distinct usernames to draw authors from
	Posts    int   // posts to create
	Comments int   // maximum comments per post
	Likes    int   // maximum likes per post, capped at Users
	Clean    bool  // delete existing rows first
	Seed     int64 // gofakeit seed; 0 picks one from the clock
}

// Result reports how many rows Seed wrote.
type Result struct {
	Posts    int
	Comments int
	Likes    int
}

// Factory builds domain entities with gofakeit and persists them through the services.
type Factory struct {
	faker    *gofakeit.Faker
	posts    *service.PostService
	comments *service.CommentService
	likes    *service.LikeService
}

// NewFactory creates a Factory writing to store.
func NewFactory(store repository.Store, seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		faker:    gofakeit.New(seed),
		posts:    service.NewPostService(store),
		comments: service.NewCommentService(store),
		likes:    service.NewLikeService(store),
	}
}

// Usernames returns n distinct fake usernames.
func (f *Factory) Usernames(n int) []string {
	seen := make(map[string]struct{}, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := f.faker.Username()
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%s%d", name, len(names))
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// CreatePost persists a post by username with generated content.
func (f *Factory) CreatePost(ctx context.Context, username string) (*models.Post, error) {
	return f.posts.CreatePost(ctx, service.CreatePostInput{
		Username: username,
		Content:  f.faker.Paragraph(1, f.faker.Number(1, 3), 12, " "),
	})
}

// CreateComment persists a comment by username on postID.
func (f *Factory) CreateComment(ctx context.Context, postID, username string) (*models.Comment, error) {
	return f.comments.CreateComment(ctx, service.CreateCommentInput{
		PostID:   postID,
		Username: username,
		Content:  f.faker.Sentence(f.faker.Number(3, 15)),
	})
}

// Like records a like by username on postID and reports whether it was new.
func (f *Factory) Like(ctx context.Context, postID, username string) (bool, error) {
	_, created, err := f.likes.LikePost(ctx, service.LikeInput{PostID: postID, Username: username})
	return created, err
}

// Seed fills the database according to opts.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result
	if opts.Users <= 0 {
		opts.Users = 10
	}

	if opts.Clean {
		if err := Clear(ctx, db); err != nil {
			return res, err
		}
	}

	f := NewFactory(repository.NewStore(db), opts.Seed)
	users := f.Usernames(opts.Users)

	for i := 0; i < opts.Posts; i++ {
		post, err := f.CreatePost(ctx, f.faker.RandomString(users))
		if err != nil {
			return res, fmt.Errorf("create post: %w", err)
		}
		res.Posts++

		for j := f.faker.Number(0, max(opts.Comments, 0)); j > 0; j-- {
			if _, err := f.CreateComment(ctx, post.ID, f.faker.RandomString(users)); err != nil {
				return res, fmt.Errorf("create comment: %w", err)
			}
			res.Comments++
		}

		likers := append([]string(nil), users...)
		f.faker.ShuffleStrings(likers)
		for _, username := range likers[:f.faker.Number(0, min(max(opts.Likes, 0), len(likers)))] {
			created, err := f.Like(ctx, post.ID, username)
			if err != nil {
				return res, fmt.Errorf("like post: %w", err)
			}
			if created {
				res.Likes++
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "Seeding completed",
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
		slog.Int("likes", res.Likes),
	)
	return res, nil
}

// Clear deletes every like, comment and post.
func Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Like{}, &models.Comment{}, &models.Post{}} {
			if err := tx.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}
