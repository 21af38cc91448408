// Package notifications provides real-time delivery of direct messages and
// announcements over Redis pub/sub and websockets.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"qubeia/internal/models"

	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "announcements"

// Notifier publishes realtime events into Redis channels. With no Redis
// client it degrades to a no-op so single-node deployments still work
// through the hub's local connections.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishAnnouncement sends a payload to every connected user.
func (n *Notifier) PublishAnnouncement(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// NotifyDirectMessage pushes a persisted direct message to the recipient's
// live connections. Delivery is best effort.
func (n *Notifier) NotifyDirectMessage(ctx context.Context, message *models.DirectMessage) {
	envelope := map[string]any{
		"type":    "direct_message",
		"payload": message,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("marshal direct message %d: %v", message.ID, err)
		return
	}
	if err := n.PublishUser(ctx, message.RecipientID, string(raw)); err != nil {
		log.Printf("publish direct message %d: %v", message.ID, err)
	}
}

// StartPatternSubscriber subscribes to the user channels and the broadcast
// channel, calling onMessage for each incoming message.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "dm:user:*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "dm:user:" + strconv.FormatUint(uint64(userID), 10)
}

// ParseUserChannel extracts the user id from a user channel name.
func ParseUserChannel(channel string) (uint, error) {
	var userID uint
	if _, err := fmt.Sscanf(channel, "dm:user:%d", &userID); err != nil {
		return 0, fmt.Errorf("invalid user channel %q: %w", channel, err)
	}
	return userID, nil
}
