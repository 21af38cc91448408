package server

import (
	"qubeia/internal/models"
	"qubeia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IssuePunishment handles POST /api/punishments
// @Summary Issue punishment
// @Description Sanction a user and apply warning points. Moderator rank or above.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{user_id=int,reason=string,warning_points=int} true "Punishment"
// @Success 201 {object} models.Punishment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /punishments [post]
func (s *Server) IssuePunishment(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		UserID        uint   `json:"user_id"`
		Reason        string `json:"reason"`
		WarningPoints int    `json:"warning_points"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	punishment, err := s.punishmentService.Issue(c.Context(), actor, service.IssuePunishmentInput{
		UserID:        req.UserID,
		Reason:        req.Reason,
		WarningPoints: req.WarningPoints,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(punishment)
}

// RevokePunishment handles DELETE /api/punishments/:id
// @Summary Revoke punishment
// @Description Remove a punishment and refund its warning points. Moderator rank or above.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Punishment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /punishments/{id} [delete]
func (s *Server) RevokePunishment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	if err := s.punishmentService.Revoke(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Punishment revoked"})
}

// GetUserPunishments handles GET /api/users/:id/punishments
// @Summary List punishments
// @Description List a user's punishments. Self, or moderator rank or above.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {array} models.Punishment
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id}/punishments [get]
func (s *Server) GetUserPunishments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	punishments, err := s.punishmentService.ListForUser(c.Context(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(punishments)
}
