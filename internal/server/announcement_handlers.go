package server

import (
	"encoding/json"

	"qubeia/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostAnnouncement handles POST /api/announcements
// @Summary Broadcast announcement
// @Description Push an announcement to every connected client. Admin rank or above; rollout is controlled by the "announcements" feature flag.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{message=string} true "Announcement text"
// @Success 202 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /announcements [post]
func (s *Server) PostAnnouncement(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}
	if !actor.RankAtLeast(models.RoleAdmin) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAuthorizationError("Broadcasting requires admin rank"))
	}
	if s.featureFlags == nil || !s.featureFlags.Enabled("announcements", actor.ID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAuthorizationError("Announcements are not enabled"))
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Announcement message is required"))
	}

	if s.notifier != nil {
		payload, _ := json.Marshal(map[string]any{
			"type": "announcement",
			"payload": map[string]any{
				"message": req.Message,
				"from":    actor.ID,
			},
		})
		if err := s.notifier.PublishAnnouncement(c.Context(), string(payload)); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Announcement queued"})
}
