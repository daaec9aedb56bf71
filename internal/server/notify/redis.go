package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// streamAdder is the part of *redis.Client the notifier needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisNotifier appends notices to a Redis stream for an external mailer
// to consume.
type RedisNotifier struct {
	client streamAdder
	stream string
	maxLen int64
}

// NewRedisNotifier publishes to stream, trimming it to roughly maxLen
// entries (0 disables trimming).
func NewRedisNotifier(client streamAdder, stream string, maxLen int64) *RedisNotifier {
	return &RedisNotifier{client: client, stream: stream, maxLen: maxLen}
}

func (n *RedisNotifier) NotifyPasswordReset(ctx context.Context, notice ResetNotice) error {
	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{
			"type":       "password_reset",
			"user_id":    notice.UserID,
			"email":      notice.Email,
			"token":      notice.Token,
			"expires_at": notice.ExpiresAt.UTC().Format(time.RFC3339),
		},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	if err := n.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis xadd error: %w", err)
	}
	return nil
}

// NewRedisClient parses url, tunes the pool and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
