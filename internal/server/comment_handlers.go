package server

import (
	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Text     string `json:"text"`
	ParentID uint   `json:"parent_id"`
}

// CreateComment appends a comment to a post's discussion.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		PostID:    postID,
		ParentID:  req.ParentID,
		AuthorUID: viewerUID(c),
		Text:      req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetThread returns a post's comments as a nested forest.
func (s *Server) GetThread(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.commentService.ListThread(c.UserContext(), postID, viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": thread})
}

// LikeComment marks the viewer's like on a comment.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.LikeComment(c.UserContext(), service.LikeCommentInput{
		CommentID: commentID,
		ViewerUID: viewerUID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comment)
}
