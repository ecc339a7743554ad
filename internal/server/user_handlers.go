package server

import (
	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	PreferredName string `json:"preferred_name"`
	Bio           string `json:"bio"`
}

// GetMyProfile returns the authenticated viewer's profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMyProfile updates the viewer's display name and bio.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UID:           viewerUID(c),
		PreferredName: req.PreferredName,
		Bio:           req.Bio,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// GetAllUsers lists every other user, for people discovery.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListOthers(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

// GetUserProfile returns another user's public profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user UID"))
	}

	user, err := s.userService.GetProfile(c.UserContext(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
