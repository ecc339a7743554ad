package server

import (
	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
)

type castVoteRequest struct {
	Color string `json:"color"`
}

// CastVote records or switches the viewer's vote on a post.
func (s *Server) CastVote(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req castVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.CastVote(c.UserContext(), service.CastVoteInput{
		PostID:   postID,
		VoterUID: viewerUID(c),
		Color:    req.Color,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetMyVote returns the viewer's current vote on a post, if any.
func (s *Server) GetMyVote(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vote, err := s.voteService.GetMyVote(c.UserContext(), postID, viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	if vote == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"vote": nil})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"vote": vote})
}
