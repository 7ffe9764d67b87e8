// Package redis implements the notification feed on Redis lists. The feed's
// shape (bounded, newest first, per user) maps directly onto LPUSH + LTRIM.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/ports/outbound"
)

// NotificationFeed implements outbound.NotificationFeed on a Redis list per
// user. Entries are stored as JSON; read-flag updates rewrite the entry in
// place with LSET.
type NotificationFeed struct {
	client *goredis.Client
	logger *zap.Logger
}

// NewNotificationFeed creates the Redis feed store.
func NewNotificationFeed(client *goredis.Client, logger *zap.Logger) outbound.NotificationFeed {
	return &NotificationFeed{
		client: client,
		logger: logger.Named("redis-feed"),
	}
}

func feedKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Push prepends a notification and trims the list to the feed cap.
func (r *NotificationFeed) Push(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := feedKey(n.UserID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, notification.FeedCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

// List returns the user's feed newest first.
func (r *NotificationFeed) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	entries, err := r.client.LRange(ctx, feedKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	list := make([]*notification.Notification, 0, len(entries))
	for _, raw := range entries {
		var n notification.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			r.logger.Warn("skipping malformed feed entry",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		list = append(list, &n)
	}
	return list, nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationFeed) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	list, err := r.List(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// MarkRead flips one notification's read flag in place.
func (r *NotificationFeed) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	key := feedKey(userID)
	entries, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read feed: %w", err)
	}

	for i, raw := range entries {
		var n notification.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		if n.ID != id {
			continue
		}
		if n.Read {
			return nil
		}
		n.Read = true
		payload, err := json.Marshal(&n)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}
		if err := r.client.LSet(ctx, key, int64(i), payload).Err(); err != nil {
			return fmt.Errorf("failed to update notification: %w", err)
		}
		return nil
	}
	return notification.ErrNotFound
}

// MarkAllRead flips every unread notification and returns the count flipped.
func (r *NotificationFeed) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	key := feedKey(userID)
	entries, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read feed: %w", err)
	}

	count := 0
	for i, raw := range entries {
		var n notification.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil || n.Read {
			continue
		}
		n.Read = true
		payload, err := json.Marshal(&n)
		if err != nil {
			return count, fmt.Errorf("failed to marshal notification: %w", err)
		}
		if err := r.client.LSet(ctx, key, int64(i), payload).Err(); err != nil {
			return count, fmt.Errorf("failed to update notification: %w", err)
		}
		count++
	}
	return count, nil
}

// Clear empties the user's feed.
func (r *NotificationFeed) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, feedKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear feed: %w", err)
	}
	return nil
}
