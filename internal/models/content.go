package models

import (
	"time"
)

// ContentStatus is the lifecycle state of a content item.
type ContentStatus string

const (
	ContentStatusActive  ContentStatus = "active"
	ContentStatusDeleted ContentStatus = "deleted"
)

// ReportStatus is the triage workflow state carried by items in report-style
// sections (e.g. bug-reports). Empty for items in sections without triage.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusFixed   ReportStatus = "fixed"
	ReportStatusInvalid ReportStatus = "invalid"
)

// Content size limits, enforced at the service layer.
const (
	MaxContentTitleLen = 200
	MaxContentBodyLen  = 10000
)

// ContentItem represents a forum post inside a section. Deletion is soft:
// the row stays, status flips to deleted and deleted_by is recorded. Write
// transitions happen as single conditional UPDATEs.
type ContentItem struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Section   string        `gorm:"size:64;not null;index" json:"section"`
	Title     string        `gorm:"size:200;not null" json:"title"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	AuthorID  uint          `gorm:"not null;index" json:"author_id"`
	Author    User          `gorm:"foreignKey:AuthorID" json:"author"`
	Status    ContentStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	DeletedBy *uint         `json:"deleted_by,omitempty"`
	// ReportStatus only carries meaning for items in triage sections.
	ReportStatus ReportStatus `gorm:"size:16" json:"report_status,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName returns the database table name for ContentItem.
func (ContentItem) TableName() string {
	return "content_items"
}

// Deleted reports whether the item is soft-deleted.
func (c *ContentItem) Deleted() bool {
	return c.Status == ContentStatusDeleted
}

// Edited reports whether the item has been modified since creation.
func (c *ContentItem) Edited() bool {
	return c.UpdatedAt.After(c.CreatedAt)
}
