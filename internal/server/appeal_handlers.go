package server

import (
	"qubeia/internal/models"
	"qubeia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAppeal handles POST /api/appeals
// @Summary File appeal
// @Description Appeal one of the caller's own punishments
// @Tags appeals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{punishment_id=int,reason=string} true "Appeal"
// @Success 201 {object} models.Appeal
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /appeals [post]
func (s *Server) CreateAppeal(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		PunishmentID uint   `json:"punishment_id"`
		Reason       string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	appeal, err := s.appealService.Create(c.Context(), actor, service.CreateAppealInput{
		PunishmentID: req.PunishmentID,
		Reason:       req.Reason,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appeal)
}

// GetMyAppeals handles GET /api/appeals/me
// @Summary My appeals
// @Tags appeals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Appeal
// @Router /appeals/me [get]
func (s *Server) GetMyAppeals(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	appeals, err := s.appealService.ListMine(c.Context(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(appeals)
}

// GetAppeals handles GET /api/appeals
// @Summary List appeals
// @Description List all appeals for review. Moderator rank or above.
// @Tags appeals
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Appeal
// @Failure 403 {object} models.ErrorResponse
// @Router /appeals [get]
func (s *Server) GetAppeals(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	appeals, err := s.appealService.List(c.Context(), actor, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(appeals)
}

// DecideAppeal handles POST /api/appeals/:id/decision
// @Summary Decide appeal
// @Description Approve or reject a pending appeal. Approval revokes the punishment and refunds its points. An appeal is decided exactly once.
// @Tags appeals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appeal ID"
// @Param request body object{decision=string} true "approved or rejected"
// @Success 200 {object} models.Appeal
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /appeals/{id}/decision [post]
func (s *Server) DecideAppeal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Decision string `json:"decision"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	appeal, err := s.appealService.Decide(c.Context(), actor, id, models.AppealDecision(req.Decision))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(appeal)
}
