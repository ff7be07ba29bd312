package server

import (
	"simplesocial/internal/notifications"
	"simplesocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req contentRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventPostCreated, post.ID, "", post.Username)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req contentRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventPostUpdated, post.ID, "", post.Username)

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID := c.Params("postId")
	if err := s.postService.DeletePost(c.UserContext(), postID); err != nil {
		return respondError(c, err)
	}

	s.publishEvent(c, notifications.EventPostDeleted, postID, "", "")

	return c.SendStatus(fiber.StatusNoContent)
}
