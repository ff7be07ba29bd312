package server

import (
	"simplesocial/internal/notifications"
	"simplesocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/posts/:postId/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext(), c.Params("postId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req contentRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventCommentCreated, comment.PostID, comment.ID, comment.Username)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/posts/:postId/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	comment, err := s.commentService.GetComment(c.UserContext(), c.Params("postId"), c.Params("commentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PATCH /api/posts/:postId/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	var req contentRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		PostID:    c.Params("postId"),
		CommentID: c.Params("commentId"),
		Username:  req.Username,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventCommentUpdated, comment.PostID, comment.ID, comment.Username)

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:postId/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comment, err := s.commentService.DeleteComment(c.UserContext(), c.Params("postId"), c.Params("commentId"))
	if err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventCommentDeleted, comment.PostID, comment.ID, comment.Username)

	return c.SendStatus(fiber.StatusNoContent)
}
