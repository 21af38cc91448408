package service

import (
	"context"
	"fmt"

	"qubeia/internal/models"
	"qubeia/internal/repository"
)

// AppealService runs the appeal workflow: a punished user pleads their case,
// a moderator decides it exactly once.
type AppealService struct {
	appealRepo     repository.AppealRepository
	punishmentRepo repository.PunishmentRepository
	userRepo       repository.UserRepository
	allowResubmit  bool
}

type CreateAppealInput struct {
	PunishmentID uint
	Reason       string
}

func NewAppealService(
	appealRepo repository.AppealRepository,
	punishmentRepo repository.PunishmentRepository,
	userRepo repository.UserRepository,
	allowResubmit bool,
) *AppealService {
	return &AppealService{
		appealRepo:     appealRepo,
		punishmentRepo: punishmentRepo,
		userRepo:       userRepo,
		allowResubmit:  allowResubmit,
	}
}

// Create opens an appeal against one of the actor's own punishments. Being
// sanctioned never blocks filing an appeal.
func (s *AppealService) Create(ctx context.Context, actor Actor, in CreateAppealInput) (*models.Appeal, error) {
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > models.MaxAppealReasonLen {
		return nil, models.NewValidationError(fmt.Sprintf("Reason too long (max %d characters)", models.MaxAppealReasonLen))
	}

	punishment, err := s.punishmentRepo.GetByID(ctx, in.PunishmentID)
	if err != nil {
		return nil, err
	}
	if punishment.UserID != actor.ID {
		return nil, models.NewAuthorizationError("You can only appeal your own punishments")
	}

	// A pending or approved appeal always blocks a new one; a rejected
	// appeal blocks unless resubmission is enabled.
	blocking := []models.AppealDecision{models.AppealPending, models.AppealApproved}
	if !s.allowResubmit {
		blocking = append(blocking, models.AppealRejected)
	}
	blocked, err := s.appealRepo.HasBlockingAppeal(ctx, actor.ID, in.PunishmentID, blocking...)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, models.NewConflictError("An appeal for this punishment already exists")
	}

	appeal := &models.Appeal{
		PunishmentID: in.PunishmentID,
		UserID:       actor.ID,
		Reason:       in.Reason,
		Decision:     models.AppealPending,
	}
	if err := s.appealRepo.Create(ctx, appeal); err != nil {
		return nil, err
	}
	return appeal, nil
}

// Decide settles a pending appeal. Requires moderator rank or above; a
// decided appeal cannot be decided again. Approval revokes the underlying
// punishment and refunds its warning points.
func (s *AppealService) Decide(ctx context.Context, actor Actor, appealID uint, outcome models.AppealDecision) (*models.Appeal, error) {
	if !actor.RankAtLeast(models.RoleModerator) {
		return nil, models.NewAuthorizationError("Deciding appeals requires moderator rank")
	}
	if outcome != models.AppealApproved && outcome != models.AppealRejected {
		return nil, models.NewValidationError("Decision must be approved or rejected")
	}

	changed, err := s.appealRepo.Decide(ctx, appealID, outcome, actor.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// The conditional update matched nothing: either the appeal is
		// gone or someone decided it first.
		if _, err := s.appealRepo.GetByID(ctx, appealID); err != nil {
			return nil, err
		}
		return nil, models.NewConflictError("Appeal has already been decided")
	}

	appeal, err := s.appealRepo.GetByID(ctx, appealID)
	if err != nil {
		return nil, err
	}

	if outcome == models.AppealApproved {
		punishment, err := s.punishmentRepo.GetByID(ctx, appeal.PunishmentID)
		if err != nil {
			return appeal, nil // punishment already revoked elsewhere
		}
		if _, err := s.punishmentRepo.Delete(ctx, appeal.PunishmentID); err != nil {
			return nil, err
		}
		if punishment.WarningPoints > 0 {
			if err := s.userRepo.AdjustWarningPoints(ctx, punishment.UserID, -punishment.WarningPoints); err != nil {
				return nil, err
			}
		}
	}
	return appeal, nil
}

// List returns all appeals, newest first. Moderator rank or above only.
func (s *AppealService) List(ctx context.Context, actor Actor, limit, offset int) ([]*models.Appeal, error) {
	if !actor.RankAtLeast(models.RoleModerator) {
		return nil, models.NewAuthorizationError("Listing appeals requires moderator rank")
	}
	return s.appealRepo.List(ctx, limit, offset)
}

// ListMine returns the actor's own appeals.
func (s *AppealService) ListMine(ctx context.Context, actor Actor) ([]*models.Appeal, error) {
	return s.appealRepo.ListByUser(ctx, actor.ID)
}
