package conversation

import (
	"context"
	"encoding/json"
	"time"

	"appointly/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:session:"

// RedisSessionStore persists conversation sessions in Redis with a TTL,
// so idle conversations eventually expire.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) GetOrCreate(ctx context.Context, conversationID string) (*models.ConversationSession, error) {
	key := sessionKeyPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.NewConversationSession(conversationID), nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.ConversationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, conversationID string, session *models.ConversationSession) error {
	key := sessionKeyPrefix + conversationID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Reset(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+conversationID).Err()
}
