package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tanuki-quiz/internal/cache"
	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxIDAttempts = 8

// RedisSessionStore implements domain.QuizSessionStore on Redis so several
// API instances can share quiz sessions. Expiry is delegated to key TTLs;
// there is no sweeper.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	newID  func() (string, error)
}

// NewRedisSessionStore creates a store on a connected *redis.Client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewRandom()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

var _ domain.QuizSessionStore = (*RedisSessionStore)(nil)

func sessionKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

// Create stores the session with SETNX so a live id is never overwritten.
func (r *RedisSessionStore) Create(ctx context.Context, session domain.QuizSession) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			return "", domain.NewInternalError("failed to generate session id", err)
		}
		session.ID = id

		payload, err := json.Marshal(domain.StoredSession{Session: session, CreatedAt: r.now().UTC()})
		if err != nil {
			return "", domain.NewInternalError("failed to encode quiz session", err)
		}

		created, err := r.client.SetNX(ctx, sessionKey(id), string(payload), r.ttl).Result()
		if err != nil {
			return "", domain.NewInternalError("failed to store quiz session", err)
		}
		if created {
			return id, nil
		}
	}
	return "", domain.NewInternalError(fmt.Sprintf("no free session id after %d attempts", maxIDAttempts), nil)
}

// Consume atomically fetches and deletes the session with GETDEL. Redis
// failures are logged and reported as an unknown session.
func (r *RedisSessionStore) Consume(ctx context.Context, id, selectedCategory string) domain.Verdict {
	val, err := r.client.GetDel(ctx, sessionKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Get().Error("Failed to consume quiz session", zap.String("session_id", id), zap.Error(err))
		}
		return domain.UnknownVerdict()
	}

	var stored domain.StoredSession
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		logger.Get().Error("Stored quiz session is corrupt", zap.String("session_id", id), zap.Error(err))
		return domain.UnknownVerdict()
	}
	return domain.Verdict{
		Correct:       selectedCategory == stored.Session.CorrectCategory,
		CorrectAnswer: stored.Session.CorrectCategory,
	}
}

// Ping checks the health of the Redis server.
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
