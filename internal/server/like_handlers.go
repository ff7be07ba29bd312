package server

import (
	"simplesocial/internal/notifications"
	"simplesocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:postId/likes
func (s *Server) LikePost(c *fiber.Ctx) error {
	var req likeRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	like, created, err := s.likeService.LikePost(c.UserContext(), service.LikeInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
	})
	if err != nil {
		return respondError(c, err)
	}

	if created {
		s.publishEvent(c, notifications.EventPostLiked, like.PostID, "", like.Username)
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikePost handles DELETE /api/posts/:postId/likes
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	var req likeRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	postID := c.Params("postId")
	removed, err := s.likeService.UnlikePost(c.UserContext(), service.LikeInput{
		PostID:   postID,
		Username: req.Username,
	})
	if err != nil {
		return respondError(c, err)
	}

	if removed {
		s.publishEvent(c, notifications.EventPostUnliked, postID, "", req.Username)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
