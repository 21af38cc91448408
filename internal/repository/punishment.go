package repository

import (
	"context"
	"errors"

	"qubeia/internal/models"

	"gorm.io/gorm"
)

// PunishmentRepository defines persistence operations for moderation punishments.
type PunishmentRepository interface {
	Create(ctx context.Context, punishment *models.Punishment) error
	GetByID(ctx context.Context, id uint) (*models.Punishment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Punishment, error)
	// Delete removes the punishment record. Returns false when no row matched.
	Delete(ctx context.Context, id uint) (bool, error)
}

type punishmentRepository struct {
	db *gorm.DB
}

// NewPunishmentRepository returns a new PunishmentRepository implementation.
func NewPunishmentRepository(db *gorm.DB) PunishmentRepository {
	return &punishmentRepository{db: db}
}

func (r *punishmentRepository) Create(ctx context.Context, punishment *models.Punishment) error {
	if err := r.db.WithContext(ctx).Create(punishment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *punishmentRepository) GetByID(ctx context.Context, id uint) (*models.Punishment, error) {
	var punishment models.Punishment
	if err := r.db.WithContext(ctx).First(&punishment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Punishment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &punishment, nil
}

func (r *punishmentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Punishment, error) {
	var punishments []*models.Punishment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&punishments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return punishments, nil
}

func (r *punishmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Punishment{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
