package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceKeyFmt = "presence:%d"

// Presence records when users last made an authenticated request. It has no
// bearing on token validity. A nil client turns every call into a no-op.
type Presence struct {
	rdb    *redis.Client
	window time.Duration
}

func NewPresence(rdb *redis.Client, window time.Duration) *Presence {
	return &Presence{rdb: rdb, window: window}
}

func (p *Presence) enabled() bool {
	return p != nil && p.rdb != nil
}

// MarkActive (re)starts userID's presence window.
func (p *Presence) MarkActive(ctx context.Context, userID uint) error {
	if !p.enabled() {
		return nil
	}
	key := fmt.Sprintf(presenceKeyFmt, userID)
	return p.rdb.Set(ctx, key, time.Now().UTC().Unix(), p.window).Err()
}

// OnlineCount returns the number of unique users inside their presence window.
func (p *Presence) OnlineCount(ctx context.Context) (int, error) {
	if !p.enabled() {
		return 0, nil
	}
	var cursor uint64
	userIds := make(map[string]struct{})
	for {
		keys, newCursor, err := p.rdb.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) == 2 && parts[0] == "presence" && parts[1] != "" {
				userIds[parts[1]] = struct{}{}
			}
		}
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return len(userIds), nil
}
