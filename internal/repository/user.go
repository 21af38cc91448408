// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"qubeia/internal/cache"
	"qubeia/internal/models"

	"gorm.io/gorm"
)

// ActivityKind selects which activity counter an increment targets.
type ActivityKind string

const (
	ActivityPost    ActivityKind = "post"
	ActivityMessage ActivityKind = "message"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.Role) error
	// IncrementActivity bumps one activity counter atomically in SQL and
	// returns the fresh counters.
	IncrementActivity(ctx context.Context, id uint, kind ActivityKind) (posts, messages int, err error)
	// AdjustWarningPoints adds delta (may be negative) to the user's
	// warning points, clamped at zero.
	AdjustWarningPoints(ctx context.Context, id uint, delta int) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) IncrementActivity(ctx context.Context, id uint, kind ActivityKind) (int, int, error) {
	column := "posts_count"
	if kind == ActivityMessage {
		column = "messages_count"
	}

	// Single atomic increment; concurrent activity must not lose updates.
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return 0, 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, 0, models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)

	var user models.User
	if err := r.db.WithContext(ctx).
		Select("posts_count", "messages_count").
		First(&user, id).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return user.PostsCount, user.MessagesCount, nil
}

func (r *userRepository) AdjustWarningPoints(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("warning_points", gorm.Expr(
			"CASE WHEN warning_points + ? < 0 THEN 0 ELSE warning_points + ? END", delta, delta))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// isUniqueConstraintError detects unique violations across postgres and sqlite.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
