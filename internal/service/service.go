// Package service implements the posts, comments and likes operations on top of
// the repository Store. Every operation runs in a single transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simplesocial/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorCheck decides whether claimedAuthor may modify a record written by storedAuthor.
type AuthorCheck interface {
	CheckAuthor(ctx context.Context, storedAuthor, claimedAuthor string) error
}

// AuthorCheckFunc adapts a function to AuthorCheck.
type AuthorCheckFunc func(ctx context.Context, storedAuthor, claimedAuthor string) error

// CheckAuthor calls f.
func (f AuthorCheckFunc) CheckAuthor(ctx context.Context, storedAuthor, claimedAuthor string) error {
	return f(ctx, storedAuthor, claimedAuthor)
}

// UsernameMatch accepts the edit only when the usernames are identical.
type UsernameMatch struct{}

// CheckAuthor compares the usernames exactly, case and whitespace included.
func (UsernameMatch) CheckAuthor(_ context.Context, storedAuthor, claimedAuthor string) error {
	if storedAuthor != claimedAuthor {
		return models.NewAuthorMismatchError()
	}
	return nil
}

// Option configures the shared dependencies of a service.
type Option func(*deps)

type deps struct {
	now    func() time.Time
	newID  func() string
	author AuthorCheck
}

// WithClock replaces the time source. Returned times are converted to UTC and truncated to microseconds.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithIDGenerator replaces the UUID generator used for new posts and comments.
func WithIDGenerator(newID func() string) Option {
	return func(d *deps) { d.newID = newID }
}

// WithAuthorCheck replaces the default UsernameMatch.
func WithAuthorCheck(check AuthorCheck) Option {
	return func(d *deps) { d.author = check }
}

func newDeps(opts []Option) deps {
	d := deps{
		now:    time.Now,
		newID:  uuid.NewString,
		author: UsernameMatch{},
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d deps) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Microsecond)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// storageError maps gorm.ErrRecordNotFound to a NotFound AppError for resource
// and wraps anything else with op.
func storageError(err error, op, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
