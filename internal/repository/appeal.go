package repository

import (
	"context"
	"errors"
	"time"

	"qubeia/internal/models"

	"gorm.io/gorm"
)

// AppealRepository defines persistence operations for punishment appeals.
type AppealRepository interface {
	Create(ctx context.Context, appeal *models.Appeal) error
	GetByID(ctx context.Context, id uint) (*models.Appeal, error)
	List(ctx context.Context, limit, offset int) ([]*models.Appeal, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Appeal, error)
	// Decide flips pending -> outcome as a single conditional UPDATE.
	// Returns false when the appeal was already decided (or absent).
	Decide(ctx context.Context, id uint, outcome models.AppealDecision, decidedBy uint) (bool, error)
	// HasBlockingAppeal reports whether the user already has an appeal for
	// the punishment in any of the given decisions.
	HasBlockingAppeal(ctx context.Context, userID, punishmentID uint, decisions ...models.AppealDecision) (bool, error)
}

type appealRepository struct {
	db *gorm.DB
}

// NewAppealRepository returns a new AppealRepository implementation.
func NewAppealRepository(db *gorm.DB) AppealRepository {
	return &appealRepository{db: db}
}

func (r *appealRepository) Create(ctx context.Context, appeal *models.Appeal) error {
	if err := r.db.WithContext(ctx).Create(appeal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *appealRepository) GetByID(ctx context.Context, id uint) (*models.Appeal, error) {
	var appeal models.Appeal
	err := r.db.WithContext(ctx).
		Preload("Punishment").
		First(&appeal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Appeal", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &appeal, nil
}

func (r *appealRepository) List(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	var appeals []*models.Appeal
	err := r.db.WithContext(ctx).
		Preload("Punishment").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&appeals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return appeals, nil
}

func (r *appealRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Appeal, error) {
	var appeals []*models.Appeal
	err := r.db.WithContext(ctx).
		Preload("Punishment").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&appeals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return appeals, nil
}

func (r *appealRepository) Decide(ctx context.Context, id uint, outcome models.AppealDecision, decidedBy uint) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Appeal{}).
		Where("id = ? AND decision = ?", id, models.AppealPending).
		Updates(map[string]any{
			"decision":   outcome,
			"decided_by": decidedBy,
			"decided_at": now,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *appealRepository) HasBlockingAppeal(ctx context.Context, userID, punishmentID uint, decisions ...models.AppealDecision) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appeal{}).
		Where("user_id = ? AND punishment_id = ? AND decision IN ?", userID, punishmentID, decisions).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
