// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"simplesocial/internal/observability"

	"gorm.io/gorm"
)

// Store groups the table repositories that share one database handle.
// Repositories obtained from the Store passed to a Transaction callback
// run inside that transaction.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewStore creates a Store over db.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:    db,
		trace: observability.NewTraceLayer(nil, db.Dialector.Name()),
	}
}

func (s *store) Posts() PostRepository {
	return &postRepository{db: s.db, trace: s.trace}
}

func (s *store) Comments() CommentRepository {
	return &commentRepository{db: s.db, trace: s.trace}
}

func (s *store) Likes() LikeRepository {
	return &likeRepository{db: s.db, trace: s.trace}
}

// Transaction runs fn in a database transaction. The transaction commits when
// fn returns nil and rolls back when it returns an error or panics.
func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx, trace: s.trace})
	})
}

// observe starts a span and latency timer for a repository call. The returned
// func must be deferred with a pointer to the call's error result.
func observe(ctx context.Context, trace *observability.TraceLayer, operation, table string) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := trace.TraceRepositoryMethod(ctx, operation, table)
	return ctx, func(errp *error) {
		observability.ObserveQuery(operation, table, start)
		var err error
		if errp != nil {
			err = *errp
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			observability.DatabaseErrors.WithLabelValues(operation, table).Inc()
		}
		observability.EndSpan(span, err)
	}
}
