package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/ports/outbound"
)

// NotificationFeed implements the durable per-user feed using GORM. Pushes
// trim the feed so only the newest notification.FeedCap entries survive.
type NotificationFeed struct {
	db *gorm.DB
}

// NewNotificationFeed creates the relational feed store.
func NewNotificationFeed(db *gorm.DB) outbound.NotificationFeed {
	return &NotificationFeed{db: db}
}

// Push stores one notification and evicts anything past the feed cap.
func (r *NotificationFeed) Push(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(NotificationToModel(n)).Error; err != nil {
			return err
		}

		// Evict entries beyond the cap, oldest first.
		var overflow []uuid.UUID
		err := tx.Model(&NotificationModel{}).
			Where("user_id = ?", n.UserID).
			Order("created_at desc, id desc").
			Offset(notification.FeedCap).
			Pluck("id", &overflow).Error
		if err != nil {
			return err
		}
		if len(overflow) == 0 {
			return nil
		}
		return tx.Delete(&NotificationModel{}, "id IN ?", overflow).Error
	})
}

// List returns the user's feed newest first.
func (r *NotificationFeed) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var models []NotificationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	list := make([]*notification.Notification, 0, len(models))
	for i := range models {
		list = append(list, ModelToNotification(&models[i]))
	}
	return list, nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationFeed) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return int(count), err
}

// MarkRead flips one notification's read flag.
func (r *NotificationFeed) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification and returns the count flipped.
func (r *NotificationFeed) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Clear empties the user's feed.
func (r *NotificationFeed) Clear(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Delete(&NotificationModel{}, "user_id = ?", userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
