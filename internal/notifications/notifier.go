// Package notifications publishes domain events into Redis channels.
// Presentation clients subscribe to reconcile their optimistic local
// state against confirmed server outcomes; delivery is best-effort and
// never a correctness mechanism.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types published to user channels.
const (
	EventFollowRequestReceived = "follow_request_received"
	EventFollowRequestAccepted = "follow_request_accepted"
	EventPostLiked             = "post_liked"
	EventPostCommented         = "post_commented"
	EventFeedStale             = "feed_stale"
)

// Notifier provides helpers to publish domain events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

type envelope struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

// PublishUser sends an event to a user's channel. A nil notifier or
// Redis client is a no-op.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, eventType string, data map[string]interface{}) {
	if n == nil || n.rdb == nil {
		return
	}
	payload, err := json.Marshal(envelope{
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return
	}
	channel := fmt.Sprintf("events:user:%d", userID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		middleware.Logger.Warn("event publish failed",
			"channel", channel, "event", eventType, "error", err.Error())
		return
	}
	observability.NotificationsPublished.WithLabelValues(eventType).Inc()
}
