package auth

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles repeated failed logins per username+IP pair using a
// redis counter with a sliding TTL. A nil client disables throttling.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter constructs a limiter allowing maxAttempts failures per window.
func NewLoginLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *LoginLimiter {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Blocked reports whether the username+IP pair has exhausted its attempts.
func (l *LoginLimiter) Blocked(ctx context.Context, username, ip string) bool {
	if l == nil || l.client == nil {
		return false
	}
	count, err := l.client.Get(ctx, l.key(username, ip)).Int64()
	if err != nil {
		return false
	}
	return count >= l.maxAttempts
}

// RecordFailure bumps the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username, ip string) {
	if l == nil || l.client == nil {
		return
	}
	key := l.key(username, ip)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	_, _ = pipe.Exec(ctx)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username, ip string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, l.key(username, ip)).Err()
}

func (l *LoginLimiter) key(username, ip string) string {
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return fmt.Sprintf("login_attempts:%s:%s", username, ip)
}
