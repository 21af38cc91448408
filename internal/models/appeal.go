package models

import "time"

// AppealDecision is the state of a punishment appeal. Pending is the only
// non-terminal state.
type AppealDecision string

const (
	AppealPending  AppealDecision = "pending"
	AppealApproved AppealDecision = "approved"
	AppealRejected AppealDecision = "rejected"
)

// MaxAppealReasonLen caps the appeal statement length.
const MaxAppealReasonLen = 2000

// Appeal is a user's request to have a punishment reviewed. An appeal is
// decided exactly once; the decide transition is a conditional UPDATE that
// only fires while the decision is still pending.
type Appeal struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PunishmentID uint           `gorm:"not null;index" json:"punishment_id"`
	Punishment   Punishment     `gorm:"foreignKey:PunishmentID" json:"punishment"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Reason       string         `gorm:"size:2000;not null" json:"reason"`
	Decision     AppealDecision `gorm:"size:16;not null;default:pending;index" json:"decision"`
	DecidedBy    *uint          `json:"decided_by,omitempty"`
	DecidedAt    *time.Time     `json:"decided_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Appeal.
func (Appeal) TableName() string {
	return "appeals"
}
