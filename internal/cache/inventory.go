package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	feedKeyPrefix    = "feed:user:%d"
	profileKeyPrefix = "profile:%s"
	storiesKeyPrefix = "stories:user:%d"
)

const (
	// FeedTTL bounds how stale a cached feed page may get when an
	// invalidation is missed (e.g. a followed user posts).
	FeedTTL    = 2 * time.Minute
	ProfileTTL = 5 * time.Minute
	StoriesTTL = 1 * time.Minute
)

func FeedKey(userID uint) string {
	return fmt.Sprintf(feedKeyPrefix, userID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

func StoriesKey(userID uint) string {
	return fmt.Sprintf(storiesKeyPrefix, userID)
}

// Invalidate drops a key. This is the server-side "stale view" signal:
// the next read repopulates from the database.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateFeed(ctx context.Context, userID uint) {
	Invalidate(ctx, FeedKey(userID))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}

func InvalidateStories(ctx context.Context, userID uint) {
	Invalidate(ctx, StoriesKey(userID))
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err != nil {
		// Treat any Redis failure as a miss; the caller falls back to the DB.
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate
// dest), then stores the result with ttl.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, _ := GetJSON(ctx, key, dest)
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
