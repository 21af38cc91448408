package service

import (
	"context"
	"fmt"

	"qubeia/internal/models"
	"qubeia/internal/observability"
	"qubeia/internal/repository"
)

// DMNotifier delivers a direct message to the recipient's live connections.
// Delivery is best effort; persistence already happened.
type DMNotifier interface {
	NotifyDirectMessage(ctx context.Context, message *models.DirectMessage)
}

// MessageService sends and reads direct messages between members.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	reputation  *ReputationService
	notifier    DMNotifier
}

type SendMessageInput struct {
	RecipientID uint
	Body        string
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	reputation *ReputationService,
	notifier DMNotifier,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		reputation:  reputation,
		notifier:    notifier,
	}
}

// Send persists a direct message and pushes it to the recipient.
func (s *MessageService) Send(ctx context.Context, actor Actor, in SendMessageInput) (*models.DirectMessage, error) {
	if len(in.Body) < models.MinDirectMessageLen {
		return nil, models.NewValidationError("Message body is required")
	}
	if len(in.Body) > models.MaxDirectMessageLen {
		return nil, models.NewValidationError(fmt.Sprintf("Message too long (max %d characters)", models.MaxDirectMessageLen))
	}
	if in.RecipientID == actor.ID {
		return nil, models.NewValidationError("You cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}

	message := &models.DirectMessage{
		SenderID:    actor.ID,
		RecipientID: in.RecipientID,
		Body:        in.Body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.RecordMessage("direct")

	// Counter drift is tolerable; the message itself is committed.
	if s.reputation != nil {
		_, _ = s.reputation.RecordActivity(ctx, actor.ID, repository.ActivityMessage)
	}
	if s.notifier != nil {
		s.notifier.NotifyDirectMessage(ctx, message)
	}
	return message, nil
}

// Conversation returns the messages between the actor and another user,
// newest first.
func (s *MessageService) Conversation(ctx context.Context, actor Actor, otherID uint, limit, offset int) ([]*models.DirectMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.messageRepo.Conversation(ctx, actor.ID, otherID, limit, offset)
}
