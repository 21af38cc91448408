package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a user's global role within the community.
type Role string

const (
	RoleUser      Role = "user"
	RoleHelper    Role = "helper"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleOwner     Role = "owner"
)

// Badge is a reputation badge derived from a user's activity counters.
type Badge string

const (
	BadgeNewMember     Badge = "new-member"
	BadgeMember        Badge = "member"
	BadgeClimber       Badge = "climber"
	BadgeQubed         Badge = "qubed"
	BadgeEpicQube      Badge = "epic-qube"
	BadgeUniqueQube    Badge = "unique-qube"
	BadgeLegendaryQube Badge = "legendary-qube"
)

// User represents a registered community member.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"size:16;not null;default:user" json:"role"`
	// PostsCount and MessagesCount are bumped atomically in SQL; the badge is
	// always recomputed from them, never stored.
	PostsCount    int            `gorm:"not null;default:0" json:"posts_count"`
	MessagesCount int            `gorm:"not null;default:0" json:"messages_count"`
	WarningPoints int            `gorm:"not null;default:0" json:"warning_points"`
	Badge         Badge          `gorm:"-" json:"badge,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}
