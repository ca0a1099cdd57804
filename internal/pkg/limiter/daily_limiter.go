package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Usage is the outcome of one consumption attempt.
type Usage struct {
	Allowed    bool
	Limit      int
	Used       int
	ResetAfter time.Time
}

// DailyLimiter counts per-user requests in Redis, resetting at midnight UTC.
type DailyLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
}

func NewDailyLimiter(rdb *redis.Client, prefix string, limit int) *DailyLimiter {
	return &DailyLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
	}
}

// Consume increments the user's counter for today and reports whether the
// request is within the limit. When Redis is unreachable the request is
// allowed; rate limiting is protective, not load-bearing.
func (l *DailyLimiter) Consume(ctx context.Context, userId string) (*Usage, error) {
	now := time.Now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	key := fmt.Sprintf("%s:%s:%s", l.prefix, userId, now.Format("2006-01-02"))

	used, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return &Usage{Allowed: true, Limit: l.limit, ResetAfter: midnight}, err
	}
	if used == 1 {
		l.rdb.ExpireAt(ctx, key, midnight)
	}

	return &Usage{
		Allowed:    int(used) <= l.limit,
		Limit:      l.limit,
		Used:       int(used),
		ResetAfter: midnight,
	}, nil
}
