// Package memory provides in-memory store implementations used in tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/ports/outbound"
)

// NotificationFeed is a process-local feed store. Safe for concurrent use.
type NotificationFeed struct {
	mu    sync.RWMutex
	feeds map[uuid.UUID][]*notification.Notification
}

// NewNotificationFeed creates an empty in-memory feed store.
func NewNotificationFeed() outbound.NotificationFeed {
	return &NotificationFeed{
		feeds: make(map[uuid.UUID][]*notification.Notification),
	}
}

// Push prepends a notification and trims the feed to the cap.
func (r *NotificationFeed) Push(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *n
	feed := append([]*notification.Notification{&clone}, r.feeds[n.UserID]...)
	if len(feed) > notification.FeedCap {
		feed = feed[:notification.FeedCap]
	}
	r.feeds[n.UserID] = feed
	return nil
}

// List returns the user's feed newest first.
func (r *NotificationFeed) List(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*notification.Notification
	for _, n := range r.feeds[userID] {
		if unreadOnly && n.Read {
			continue
		}
		clone := *n
		list = append(list, &clone)
	}
	return list, nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationFeed) UnreadCount(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.feeds[userID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips one notification's read flag.
func (r *NotificationFeed) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.feeds[userID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return notification.ErrNotFound
}

// MarkAllRead flips every unread notification and returns the count flipped.
func (r *NotificationFeed) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.feeds[userID] {
		if !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

// Clear empties the user's feed.
func (r *NotificationFeed) Clear(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.feeds, userID)
	return nil
}
