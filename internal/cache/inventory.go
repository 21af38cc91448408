package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	ContentKeyPrefix      = "content:%d"
	SectionListPrefix     = "section:%s:items"
	ConversationKeyPrefix = "dm:%d:%d"
)

const (
	UserTTL        = 5 * time.Minute
	ContentTTL     = 30 * time.Minute
	SectionListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ContentKey(itemID uint) string {
	return fmt.Sprintf(ContentKeyPrefix, itemID)
}

func SectionListKey(section string) string {
	return fmt.Sprintf(SectionListPrefix, section)
}

// ConversationKey is symmetric in its participants.
func ConversationKey(a, b uint) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf(ConversationKeyPrefix, a, b)
}

// Enabled reports whether a Redis client is configured. Callers can skip
// work that only exists to compute invalidation keys.
func Enabled() bool {
	return client != nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateContent(ctx context.Context, itemID uint, section string) {
	Invalidate(ctx, ContentKey(itemID))
	Invalidate(ctx, SectionListKey(section))
}
