package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/notification"
	"github.com/cema-health/program-manager/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

var _ domain.Repository = (*NotificationGormRepository)(nil)

func (r *NotificationGormRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) ClientAccountExists(
	ctx context.Context,
	clientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", clientID, string(authz.RoleClient)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NotificationGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Notification, error) {

	var rows []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Status").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *NotificationGormRepository) GetForUser(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	statusID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("status_id", statusID).Error
}
