package models

import "time"

// MaxPunishmentReasonLen caps the reason text on a punishment.
const MaxPunishmentReasonLen = 500

// Punishment is a moderation sanction against a user. It is immutable once
// issued; the only mutation is revocation (deletion) by moderation staff.
type Punishment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"user"`
	Reason        string    `gorm:"size:500;not null" json:"reason"`
	WarningPoints int       `gorm:"not null;default:0" json:"warning_points"`
	IssuedBy      uint      `gorm:"not null" json:"issued_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for Punishment.
func (Punishment) TableName() string {
	return "punishments"
}
