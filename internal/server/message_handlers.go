package server

import (
	"qubeia/internal/models"
	"qubeia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendDirectMessage handles POST /api/messages
// @Summary Send direct message
// @Description Persist a DM and push it to the recipient's live connections
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{recipient_id=int,body=string} true "Message"
// @Success 201 {object} models.DirectMessage
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) SendDirectMessage(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Body        string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(c.Context(), actor, service.SendMessageInput{
		RecipientID: req.RecipientID,
		Body:        req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation handles GET /api/messages/:userId
// @Summary Conversation
// @Description Page through the caller's conversation with another user, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.DirectMessage
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{userId} [get]
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	messages, err := s.messageService.Conversation(c.Context(), actor, otherID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(messages)
}
