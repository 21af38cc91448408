package repository

import (
	"context"
	"errors"
	"time"

	"qubeia/internal/cache"
	"qubeia/internal/models"

	"gorm.io/gorm"
)

// ContentRepository defines persistence operations for content items. Every
// state transition is a single conditional UPDATE keyed by item id so that
// concurrent moderators cannot lose updates.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id uint) (*models.ContentItem, error)
	// ListBySection returns a snapshot of every item in the section,
	// newest first with id as the tie-breaker. Visibility filtering happens
	// in the service layer against this snapshot.
	ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error)
	// UpdateBody edits title/body while the item is active and owned by
	// authorID. Returns false if no row matched the condition.
	UpdateBody(ctx context.Context, id, authorID uint, title, body string) (bool, error)
	// MarkDeleted flips active -> deleted recording who deleted it.
	// Returns false if the item was not active.
	MarkDeleted(ctx context.Context, id, deletedBy uint) (bool, error)
	// Restore flips deleted -> active and clears deleted_by.
	// Returns false if the item was not deleted.
	Restore(ctx context.Context, id uint) (bool, error)
	// SetReportStatus mutates the report status independent of lifecycle
	// state. Returns false if the item does not exist.
	SetReportStatus(ctx context.Context, id uint, status models.ReportStatus) (bool, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a new ContentRepository implementation.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.SectionListKey(item.Section))
	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *contentRepository) ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("section = ?", section).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *contentRepository) UpdateBody(ctx context.Context, id, authorID uint, title, body string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ? AND author_id = ? AND status = ?", id, authorID, models.ContentStatusActive).
		Updates(map[string]any{
			"title":      title,
			"body":       body,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		r.invalidate(ctx, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *contentRepository) MarkDeleted(ctx context.Context, id, deletedBy uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ? AND status = ?", id, models.ContentStatusActive).
		// UpdateColumns so updated_at stays put; only author edits mark
		// an item as edited.
		UpdateColumns(map[string]any{
			"status":     models.ContentStatusDeleted,
			"deleted_by": deletedBy,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		r.invalidate(ctx, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *contentRepository) Restore(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ? AND status = ?", id, models.ContentStatusDeleted).
		UpdateColumns(map[string]any{
			"status":     models.ContentStatusActive,
			"deleted_by": nil,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		r.invalidate(ctx, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *contentRepository) SetReportStatus(ctx context.Context, id uint, status models.ReportStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ?", id).
		UpdateColumn("report_status", status)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		r.invalidate(ctx, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *contentRepository) invalidate(ctx context.Context, id uint) {
	if !cache.Enabled() {
		return
	}
	var item models.ContentItem
	if err := r.db.WithContext(ctx).Select("section").First(&item, id).Error; err == nil {
		cache.InvalidateContent(ctx, id, item.Section)
	} else {
		cache.Invalidate(ctx, cache.ContentKey(id))
	}
}
