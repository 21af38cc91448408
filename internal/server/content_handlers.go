package server

import (
	"strings"

	"qubeia/internal/models"
	"qubeia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSections handles GET /api/sections
// @Summary List sections
// @Description List the section catalog with each section's class and rank threshold
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {array} authz.Section
// @Router /sections [get]
func (s *Server) GetSections(c *fiber.Ctx) error {
	return c.JSON(s.policy.Sections())
}

// GetSectionItems handles GET /api/sections/:section/items
// @Summary List section items
// @Description List the items of a section the caller is allowed to see. Supports ?q= substring search.
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section name"
// @Param q query string false "Case-insensitive substring matched against title and body"
// @Success 200 {array} models.ContentItem
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sections/{section}/items [get]
func (s *Server) GetSectionItems(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	items, err := s.contentService.List(c.Context(), actor, service.ListContentInput{
		Section: c.Params("section"),
		Query:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(items)
}

// CreateContentItem handles POST /api/sections/:section/items
// @Summary Create item
// @Description Post a new item into a section the caller may enter
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section name"
// @Param request body object{title=string,body=string} true "Item content"
// @Success 201 {object} models.ContentItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sections/{section}/items [post]
func (s *Server) CreateContentItem(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.Create(c.Context(), actor, service.CreateContentInput{
		Section: c.Params("section"),
		Title:   req.Title,
		Body:    req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetContentItem handles GET /api/items/:id
// @Summary Get item
// @Description Fetch a single item, subject to the same visibility rules as listing
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} models.ContentItem
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id} [get]
func (s *Server) GetContentItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	item, err := s.contentService.Get(c.Context(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(item)
}

// UpdateContentItem handles PUT /api/items/:id
// @Summary Edit item
// @Description Edit an item's title and body. Author only, active items only.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body object{title=string,body=string} true "New content"
// @Success 200 {object} models.ContentItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /items/{id} [put]
func (s *Server) UpdateContentItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.Edit(c.Context(), actor, service.EditContentInput{
		ItemID: id,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(item)
}

// DeleteContentItem handles DELETE /api/items/:id
// @Summary Delete item
// @Description Soft-delete an item. Moderator rank or above; deleting twice is a no-op.
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id} [delete]
func (s *Server) DeleteContentItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	if err := s.contentService.Delete(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// RestoreContentItem handles POST /api/items/:id/restore
// @Summary Restore item
// @Description Bring a soft-deleted item back. Admin rank or above.
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id}/restore [post]
func (s *Server) RestoreContentItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	if err := s.contentService.Restore(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item restored"})
}

// SetContentReportStatus handles PUT /api/items/:id/report-status
// @Summary Set report status
// @Description Move a report through the triage workflow. Requires the section's triage capability.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body object{status=string} true "One of pending, fixed, invalid"
// @Success 200 {object} models.ContentItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id}/report-status [put]
func (s *Server) SetContentReportStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.SetReportStatus(c.Context(), actor, id, models.ReportStatus(req.Status))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(item)
}
