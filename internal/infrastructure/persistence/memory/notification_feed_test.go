package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misebox/v1/internal/domain/notification"
)

func TestNotificationFeed(t *testing.T) {
	ctx := context.Background()

	push := func(t *testing.T, feed *NotificationFeed, userID uuid.UUID, title string) *notification.Notification {
		t.Helper()
		n := notification.New(userID, notification.TypeFreshnessAlert, notification.SeverityMedium, title, "m")
		require.NoError(t, feed.Push(ctx, n))
		return n
	}

	t.Run("Push_BeyondCap_ShouldKeepNewest", func(t *testing.T) {
		feed := NewNotificationFeed().(*NotificationFeed)
		userID := uuid.New()

		for i := 0; i < notification.FeedCap+10; i++ {
			push(t, feed, userID, fmt.Sprintf("entry %d", i))
		}

		list, err := feed.List(ctx, userID, false)
		require.NoError(t, err)
		require.Len(t, list, notification.FeedCap)
		assert.Equal(t, fmt.Sprintf("entry %d", notification.FeedCap+9), list[0].Title)
		assert.Equal(t, "entry 10", list[notification.FeedCap-1].Title)
	})

	t.Run("ListedEntries_AreClones", func(t *testing.T) {
		feed := NewNotificationFeed().(*NotificationFeed)
		userID := uuid.New()
		push(t, feed, userID, "original")

		list, err := feed.List(ctx, userID, false)
		require.NoError(t, err)
		list[0].Title = "tampered"

		again, err := feed.List(ctx, userID, false)
		require.NoError(t, err)
		assert.Equal(t, "original", again[0].Title)
	})

	t.Run("ReadFlow", func(t *testing.T) {
		feed := NewNotificationFeed().(*NotificationFeed)
		userID := uuid.New()
		first := push(t, feed, userID, "first")
		push(t, feed, userID, "second")

		require.NoError(t, feed.MarkRead(ctx, userID, first.ID))

		unread, err := feed.UnreadCount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, unread)

		onlyUnread, err := feed.List(ctx, userID, true)
		require.NoError(t, err)
		require.Len(t, onlyUnread, 1)
		assert.Equal(t, "second", onlyUnread[0].Title)

		flipped, err := feed.MarkAllRead(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, flipped)

		assert.ErrorIs(t, feed.MarkRead(ctx, userID, uuid.New()), notification.ErrNotFound)
	})

	t.Run("Clear", func(t *testing.T) {
		feed := NewNotificationFeed().(*NotificationFeed)
		userID := uuid.New()
		push(t, feed, userID, "gone")

		require.NoError(t, feed.Clear(ctx, userID))

		list, err := feed.List(ctx, userID, false)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("ConcurrentPushes_AllLand", func(t *testing.T) {
		feed := NewNotificationFeed().(*NotificationFeed)
		userID := uuid.New()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n := notification.New(userID, notification.TypeLowStock, notification.SeverityLow, "t", "m")
				assert.NoError(t, feed.Push(ctx, n))
			}()
		}
		wg.Wait()

		list, err := feed.List(ctx, userID, false)
		require.NoError(t, err)
		assert.Len(t, list, 20)
	})
}
