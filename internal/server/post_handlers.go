package server

import (
	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	BlueSide string `json:"blue_side"`
	RedSide  string `json:"red_side"`
	IsGlobal *bool  `json:"is_global"`
}

// CreatePost opens a new two-sided post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	isGlobal := true
	if req.IsGlobal != nil {
		isGlobal = *req.IsGlobal
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorUID: viewerUID(c),
		Title:     req.Title,
		Topic:     req.Topic,
		BlueSide:  req.BlueSide,
		RedSide:   req.RedSide,
		IsGlobal:  isGlobal,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed returns the posts visible to the current viewer.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.VisiblePosts(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"posts": posts})
}

// GetPost returns a single post with its tallies.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes the viewer's own post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id, viewerUID(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post deleted"})
}

// GetUserPosts lists another user's posts that the viewer may see.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorUID := c.Params("uid")
	if authorUID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user UID"))
	}

	posts, err := s.postService.ListByAuthor(c.UserContext(), authorUID, viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"posts": posts})
}
