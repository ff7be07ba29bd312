package server

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"simplesocial/internal/middleware"
	"simplesocial/internal/models"
	"simplesocial/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

const publishTimeout = 2 * time.Second

// contentRequest is the body of post and comment create/update requests.
type contentRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// likeRequest is the body of like and unlike requests.
type likeRequest struct {
	Username string `json:"username"`
}

// decodeBody parses a JSON body into dst. An empty body leaves dst at its zero
// value, and a body sent without a Content-Type is read as JSON.
func decodeBody(c *fiber.Ctx, dst interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var err error
	if c.Get(fiber.HeaderContentType) == "" {
		err = c.App().Config().JSONDecoder(body, dst)
	} else {
		err = c.BodyParser(dst)
	}
	if err != nil {
		return models.NewValidationError("invalid request body")
	}
	return nil
}

// respondError maps a service error to its status and envelope. Errors that are
// not AppErrors are logged and reported as 500 without details.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "Request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return models.RespondWithError(c, status, models.NewInternalError(err))
	}
	return models.RespondWithError(c, status, err)
}

// publishEvent hands a domain event to the notifier. Failures are logged and
// never affect the response.
func (s *Server) publishEvent(c *fiber.Ctx, eventType, postID, commentID, username string) {
	if !s.notifier.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.UserContext()), publishTimeout)
	defer cancel()

	ev := notifications.NewEvent(eventType, postID, commentID, username)
	if err := s.notifier.Publish(ctx, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to publish event",
			slog.String("type", eventType),
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
	}
}
