package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrQuotaExceeded is returned once an actor used up the day's generations.
var ErrQuotaExceeded = errors.New("daily generation quota exceeded")

// Limiter charges generations against a per-actor daily budget.
type Limiter interface {
	// Consume charges n generations and returns how many are left today.
	Consume(ctx context.Context, actor string, n int) (int, error)
}

// Unlimited never refuses. It is used when no limit is configured.
type Unlimited struct{}

func (Unlimited) Consume(context.Context, string, int) (int, error) { return -1, nil }

// RedisLimiter keeps one counter per actor and day, expiring at midnight UTC.
type RedisLimiter struct {
	Client *redis.Client
	Limit  int
	Now    func() time.Time
	Logger *zap.Logger
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{Client: client, Limit: limit, Now: time.Now, Logger: zap.L()}
}

func (l *RedisLimiter) Consume(ctx context.Context, actor string, n int) (int, error) {
	if n < 1 {
		n = 1
	}
	now := l.Now().UTC()
	key := Key(actor, now)

	pipe := l.Client.TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(n))
	pipe.ExpireAt(ctx, key, endOfDay(now))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("quota: update %s: %w", key, err)
	}

	used := int(incr.Val())
	if used > l.Limit {
		// refused generations are not counted
		if err := l.Client.DecrBy(ctx, key, int64(n)).Err(); err != nil {
			l.logger().Error("quota: failed to release refused generations",
				zap.String("key", key),
				zap.Int("count", n),
				zap.Error(err),
			)
		}
		return 0, fmt.Errorf("%w: %d of %d used", ErrQuotaExceeded, used-n, l.Limit)
	}
	return l.Limit - used, nil
}

func (l *RedisLimiter) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.L()
	}
	return l.Logger
}

// Key is the Redis key of actor's counter on day.
func Key(actor string, day time.Time) string {
	return fmt.Sprintf("quota:generate:%s:%s", actor, day.UTC().Format("20060102"))
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

// New picks the limiter for the configured limit. A nil client or a limit
// below 1 disables the quota.
func New(client *redis.Client, limit int) Limiter {
	if client == nil || limit < 1 {
		return Unlimited{}
	}
	return NewRedisLimiter(client, limit)
}
