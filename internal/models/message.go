package models

import "time"

// DM length bounds.
const (
	MinDirectMessageLen = 1
	MaxDirectMessageLen = 2000
)

// DirectMessage is a private message between two users.
type DirectMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      User      `gorm:"foreignKey:SenderID" json:"sender"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Body        string    `gorm:"size:2000;not null" json:"body"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName returns the database table name for DirectMessage.
func (DirectMessage) TableName() string {
	return "direct_messages"
}
