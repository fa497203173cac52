// Package cache provides an optional redis-backed cache of generated
// quizzes, keyed by the uploaded document's content hash. A hit skips
// extraction and generation entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"pdfquiz/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the narrow key/value contract the quiz cache builds on.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// RedisCache implements Cache on a go-redis client, translating redis.Nil
// into ErrCacheMiss.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// QuizCache caches generated quizzes by the SHA-256 of the uploaded bytes.
type QuizCache struct {
	cache Cache
	ttl   time.Duration
}

func NewQuizCache(cache Cache, ttl time.Duration) *QuizCache {
	return &QuizCache{cache: cache, ttl: ttl}
}

// Key derives the cache key for a document.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return "quiz:" + hex.EncodeToString(sum[:])
}

// Get returns the cached quiz for the document, or nil on a miss. Decode
// failures count as misses; the entry will be overwritten on the next Put.
func (q *QuizCache) Get(ctx context.Context, data []byte) *models.Quiz {
	raw, err := q.cache.Get(ctx, Key(data))
	if err != nil {
		return nil
	}
	var quiz models.Quiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil
	}
	return &quiz
}

// Put stores a freshly generated quiz for the document.
func (q *QuizCache) Put(ctx context.Context, data []byte, quiz *models.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return q.cache.Set(ctx, Key(data), string(raw), q.ttl)
}
