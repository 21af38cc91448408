package repository

import (
	"context"

	"qubeia/internal/cache"
	"qubeia/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.DirectMessage) error
	// Conversation returns messages between two users, newest first.
	Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]*models.DirectMessage, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.DirectMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ConversationKey(message.SenderID, message.RecipientID))
	return nil
}

func (r *messageRepository) Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]*models.DirectMessage, error) {
	var messages []*models.DirectMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
