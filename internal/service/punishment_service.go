package service

import (
	"context"
	"fmt"

	"qubeia/internal/models"
	"qubeia/internal/repository"
)

// PunishmentService issues and revokes moderation punishments. Punishment
// records are immutable; the only write after creation is revocation.
type PunishmentService struct {
	punishmentRepo repository.PunishmentRepository
	userRepo       repository.UserRepository
}

type IssuePunishmentInput struct {
	UserID        uint
	Reason        string
	WarningPoints int
}

func NewPunishmentService(
	punishmentRepo repository.PunishmentRepository,
	userRepo repository.UserRepository,
) *PunishmentService {
	return &PunishmentService{
		punishmentRepo: punishmentRepo,
		userRepo:       userRepo,
	}
}

// Issue creates a punishment against a user and applies its warning points.
// Requires moderator rank or above.
func (s *PunishmentService) Issue(ctx context.Context, actor Actor, in IssuePunishmentInput) (*models.Punishment, error) {
	if !actor.RankAtLeast(models.RoleModerator) {
		return nil, models.NewAuthorizationError("Issuing punishments requires moderator rank")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > models.MaxPunishmentReasonLen {
		return nil, models.NewValidationError(fmt.Sprintf("Reason too long (max %d characters)", models.MaxPunishmentReasonLen))
	}
	if in.WarningPoints < 0 {
		return nil, models.NewValidationError("Warning points cannot be negative")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	punishment := &models.Punishment{
		UserID:        in.UserID,
		Reason:        in.Reason,
		WarningPoints: in.WarningPoints,
		IssuedBy:      actor.ID,
	}
	if err := s.punishmentRepo.Create(ctx, punishment); err != nil {
		return nil, err
	}
	if in.WarningPoints > 0 {
		if err := s.userRepo.AdjustWarningPoints(ctx, in.UserID, in.WarningPoints); err != nil {
			return nil, err
		}
	}
	return punishment, nil
}

// Revoke deletes a punishment and returns its warning points. Requires
// moderator rank or above.
func (s *PunishmentService) Revoke(ctx context.Context, actor Actor, punishmentID uint) error {
	if !actor.RankAtLeast(models.RoleModerator) {
		return models.NewAuthorizationError("Revoking punishments requires moderator rank")
	}
	punishment, err := s.punishmentRepo.GetByID(ctx, punishmentID)
	if err != nil {
		return err
	}
	changed, err := s.punishmentRepo.Delete(ctx, punishmentID)
	if err != nil {
		return err
	}
	if !changed {
		return models.NewNotFoundError("Punishment", punishmentID)
	}
	if punishment.WarningPoints > 0 {
		if err := s.userRepo.AdjustWarningPoints(ctx, punishment.UserID, -punishment.WarningPoints); err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns a user's punishment history. Users may read their own;
// anything else requires moderator rank.
func (s *PunishmentService) ListForUser(ctx context.Context, actor Actor, userID uint) ([]*models.Punishment, error) {
	if userID != actor.ID && !actor.RankAtLeast(models.RoleModerator) {
		return nil, models.NewAuthorizationError("Viewing other users' punishments requires moderator rank")
	}
	return s.punishmentRepo.ListByUser(ctx, userID)
}
