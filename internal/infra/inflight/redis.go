package inflight

import (
	"context"
	"log/slog"
	"time"

	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld means another submission for the same guest is still running.
var ErrHeld = errs.New("submission already in flight")

const keyPrefix = "booking:inflight:"

// RedisSubmissionGuard holds one short-lived lock per guest so a double
// submit cannot create two charges. The TTL caps how long a crashed worker
// can block the guest.
type RedisSubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSubmissionGuard(client *redis.Client, cfg config.BookingConfig) *RedisSubmissionGuard {
	return &RedisSubmissionGuard{
		client: client,
		ttl:    cfg.SubmitLockTTL,
	}
}

func (g *RedisSubmissionGuard) Acquire(ctx context.Context, guestID uuid.UUID) (func(), error) {
	key := keyPrefix + guestID.String()

	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return nil, errs.Wrap(err, "acquire submission lock")
	}
	if !ok {
		return nil, ErrHeld
	}

	release := func() {
		// The request context may already be canceled by the time we release.
		if err := g.client.Del(context.Background(), key).Err(); err != nil {
			slog.Warn("failed to release submission lock", "key", key, "error", err.Error())
		}
	}
	return release, nil
}

// NewRedisClient wires the shared connection from config and verifies it.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "connect to redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}
