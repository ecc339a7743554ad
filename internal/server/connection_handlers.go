package server

import (
	"twosides/internal/models"
	"twosides/internal/service"

	"github.com/gofiber/fiber/v2"
)

type sendRequestBody struct {
	Comment string `json:"comment"`
}

// SendConnectionRequest creates a pending request to another user.
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	toUID := c.Params("uid")
	if toUID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user UID"))
	}

	var body sendRequestBody
	// The comment is optional; an empty body is fine.
	_ = c.BodyParser(&body)

	req, err := s.connService.SendRequest(c.UserContext(), service.SendRequestInput{
		FromUID: viewerUID(c),
		ToUID:   toUID,
		Comment: body.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetPendingRequests lists requests addressed to the viewer.
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	reqs, err := s.connService.ListIncoming(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": reqs})
}

// GetSentRequests lists requests the viewer has sent.
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	reqs, err := s.connService.ListOutgoing(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": reqs})
}

// AcceptConnectionRequest resolves a pending request into a connection.
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	err = s.connService.AcceptRequest(c.UserContext(), service.ResolveRequestInput{
		RequestID: requestID,
		ViewerUID: viewerUID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Connection request accepted"})
}

// RejectConnectionRequest discards a pending request.
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	err = s.connService.RejectRequest(c.UserContext(), service.ResolveRequestInput{
		RequestID: requestID,
		ViewerUID: viewerUID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Connection request rejected"})
}

// GetConnections lists the viewer's connected users.
func (s *Server) GetConnections(c *fiber.Ctx) error {
	users, err := s.connService.ListConnections(c.UserContext(), viewerUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"connections": users})
}

// GetConnectionStatus reports whether the viewer and another user are connected.
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	otherUID := c.Params("uid")
	if otherUID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user UID"))
	}

	connected, err := s.connService.AreConnected(c.UserContext(), viewerUID(c), otherUID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"connected": connected})
}

// RemoveConnection severs an existing connection.
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	otherUID := c.Params("uid")
	if otherUID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user UID"))
	}

	if err := s.connService.Disconnect(c.UserContext(), viewerUID(c), otherUID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Connection removed"})
}
