// Package notifications publishes domain events to Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"simplesocial/internal/middleware"
	"simplesocial/internal/models"
	"simplesocial/internal/observability"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the channel used when none is configured.
const DefaultChannel = "social:events"

// Event type constants prevent typos in event names.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
	EventPostLiked      = "post_liked"
	EventPostUnliked    = "post_unliked"
)

// Event is the payload published after a successful mutation.
type Event struct {
	Type      string `json:"type"`
	PostID    string `json:"postId"`
	CommentID string `json:"commentId,omitempty"`
	Username  string `json:"username,omitempty"`
	At        string `json:"at"`
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(eventType, postID, commentID, username string) Event {
	return Event{
		Type:      eventType,
		PostID:    postID,
		CommentID: commentID,
		Username:  username,
		At:        models.FormatTime(time.Now()),
	}
}

// Notifier provides helpers to publish events into a Redis channel.
// A Notifier without a client is a no-op.
type Notifier struct {
	rdb     *redis.Client
	channel string
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{rdb: rdb, channel: channel}
}

// Enabled reports whether events are actually sent anywhere.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// Channel returns the Redis channel events are published to.
func (n *Notifier) Channel() string {
	return n.channel
}

// Publish sends ev to the events channel.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if !n.Enabled() {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		observability.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return fmt.Errorf("failed to marshal %s event: %w", ev.Type, err)
	}
	if err := n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
		observability.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}
	observability.EventsPublished.WithLabelValues(ev.Type, "ok").Inc()
	return nil
}

// Subscribe listens on the events channel and calls onEvent for every decoded
// event until ctx is cancelled. Undecodable payloads are logged and skipped.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if !n.Enabled() {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, n.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", n.channel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("Dropping malformed event", slog.String("channel", msg.Channel), slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("Panic in event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
