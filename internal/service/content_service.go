package service

import (
	"context"
	"fmt"
	"strings"

	"qubeia/internal/authz"
	"qubeia/internal/models"
	"qubeia/internal/observability"
	"qubeia/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ContentService owns the content lifecycle: creation, author edits,
// moderator deletion, admin restore and report triage.
type ContentService struct {
	contentRepo repository.ContentRepository
	userRepo    repository.UserRepository
	policy      *authz.SectionPolicy
}

type CreateContentInput struct {
	Section string
	Title   string
	Body    string
}

type EditContentInput struct {
	ItemID uint
	Title  string
	Body   string
}

type ListContentInput struct {
	Section string
	Query   string
}

func NewContentService(
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
	policy *authz.SectionPolicy,
) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		userRepo:    userRepo,
		policy:      policy,
	}
}

// List returns the items of a section the actor is allowed to see.
func (s *ContentService) List(ctx context.Context, actor Actor, in ListContentInput) ([]*models.ContentItem, error) {
	span, ctx := observability.NewSpan(ctx, "content.list")
	defer span.End()
	span.AddAttributes(attribute.String("section", in.Section))

	if err := s.requireEntry(actor, in.Section); err != nil {
		span.SetError(err)
		return nil, err
	}
	items, err := s.contentRepo.ListBySection(ctx, in.Section)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return FilterVisible(s.policy, actor, in.Section, items, in.Query), nil
}

// Get returns a single item, applying the same visibility rules as List.
func (s *ContentService) Get(ctx context.Context, actor Actor, itemID uint) (*models.ContentItem, error) {
	item, err := s.contentRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEntry(actor, item.Section); err != nil {
		return nil, err
	}
	visible := FilterVisible(s.policy, actor, item.Section, []*models.ContentItem{item}, "")
	if len(visible) == 0 {
		return nil, models.NewNotFoundError("Content item", itemID)
	}
	return item, nil
}

// Create posts a new item into a section. Anyone who may enter the section
// may post into it.
func (s *ContentService) Create(ctx context.Context, actor Actor, in CreateContentInput) (*models.ContentItem, error) {
	span, ctx := observability.NewSpan(ctx, "content.create")
	defer span.End()

	if err := s.requireEntry(actor, in.Section); err != nil {
		span.SetError(err)
		return nil, err
	}
	if err := validateContentFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		Section:  in.Section,
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Body,
		AuthorID: actor.ID,
		Status:   models.ContentStatusActive,
	}
	if s.policy.UsesReportStatus(in.Section) {
		item.ReportStatus = models.ReportStatusPending
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		span.SetError(err)
		return nil, err
	}
	if _, _, err := s.userRepo.IncrementActivity(ctx, actor.ID, repository.ActivityPost); err != nil {
		// Counter drift is tolerable; the item itself is committed.
		span.SetError(err)
	}
	return item, nil
}

// Edit replaces title and body. Only the author may edit, and only while the
// item is active.
func (s *ContentService) Edit(ctx context.Context, actor Actor, in EditContentInput) (*models.ContentItem, error) {
	if err := validateContentFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	changed, err := s.contentRepo.UpdateBody(ctx, in.ItemID, actor.ID, strings.TrimSpace(in.Title), in.Body)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Work out which precondition failed.
		item, err := s.contentRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		if item.AuthorID != actor.ID {
			return nil, models.NewAuthorizationError("Only the author can edit this item")
		}
		return nil, models.NewConflictError("Deleted items cannot be edited")
	}
	return s.contentRepo.GetByID(ctx, in.ItemID)
}

// Delete soft-deletes an item. Requires moderator rank or above and is
// idempotent: deleting an already-deleted item succeeds without changes.
func (s *ContentService) Delete(ctx context.Context, actor Actor, itemID uint) error {
	if !actor.RankAtLeast(models.RoleModerator) {
		return models.NewAuthorizationError("Deleting content requires moderator rank")
	}
	changed, err := s.contentRepo.MarkDeleted(ctx, itemID, actor.ID)
	if err != nil {
		return err
	}
	if !changed {
		item, err := s.contentRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.Deleted() {
			return nil
		}
		return models.NewInternalError(fmt.Errorf("delete of item %d matched no row", itemID))
	}
	return nil
}

// Restore brings a soft-deleted item back. Requires admin rank or above.
func (s *ContentService) Restore(ctx context.Context, actor Actor, itemID uint) error {
	if !actor.RankAtLeast(models.RoleAdmin) {
		return models.NewAuthorizationError("Restoring content requires admin rank")
	}
	changed, err := s.contentRepo.Restore(ctx, itemID)
	if err != nil {
		return err
	}
	if !changed {
		item, err := s.contentRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Deleted() {
			return nil
		}
		return models.NewInternalError(fmt.Errorf("restore of item %d matched no row", itemID))
	}
	return nil
}

// SetReportStatus moves a report through triage. The actor needs the
// section's triage capability; the item's lifecycle state does not matter.
func (s *ContentService) SetReportStatus(ctx context.Context, actor Actor, itemID uint, status models.ReportStatus) (*models.ContentItem, error) {
	switch status {
	case models.ReportStatusPending, models.ReportStatusFixed, models.ReportStatusInvalid:
	default:
		return nil, models.NewValidationError("Invalid report status")
	}

	item, err := s.contentRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	capability, ok := s.policy.TriageCapability(item.Section)
	if !ok {
		return nil, models.NewValidationError("Section does not track report status")
	}
	if !actor.Has(capability) {
		return nil, models.NewAuthorizationError("Updating report status requires the section's triage capability")
	}

	if _, err := s.contentRepo.SetReportStatus(ctx, itemID, status); err != nil {
		return nil, err
	}
	item.ReportStatus = status
	return item, nil
}

func (s *ContentService) requireEntry(actor Actor, section string) error {
	allowed, found := s.policy.CanEnter(actor.Role, section)
	if !found {
		return models.NewNotFoundNamedError("Section", section)
	}
	if !allowed {
		return models.NewAuthorizationError("You cannot enter this section")
	}
	return nil
}

func validateContentFields(title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > models.MaxContentTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", models.MaxContentTitleLen))
	}
	if body == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > models.MaxContentBodyLen {
		return models.NewValidationError(fmt.Sprintf("Body too long (max %d characters)", models.MaxContentBodyLen))
	}
	return nil
}
