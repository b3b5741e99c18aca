package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	attemptKeyPrefix     = "quiz:attempt:"
	remediationKeyPrefix = "quiz:remediation:"
	practiceKeyPrefix    = "quiz:practice:"
)

// RedisSessionStore 将会话整体序列化为 JSON blob 存入 Redis。
// ttl 为 0 时永不过期；过期只是部署层的保留策略，状态机不感知
type RedisSessionStore struct {
	Redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Redis: rdb, ttl: ttl}
}

func (s *RedisSessionStore) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, key, data, s.ttl).Err()
}

func (s *RedisSessionStore) get(ctx context.Context, key string, v interface{}) error {
	data, err := s.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrSessionMissing
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *RedisSessionStore) SaveAttempt(ctx context.Context, a *model.QuizAttempt) error {
	return s.set(ctx, attemptKeyPrefix+a.ID, a)
}

func (s *RedisSessionStore) GetAttempt(ctx context.Context, id string) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := s.get(ctx, attemptKeyPrefix+id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *RedisSessionStore) DeleteAttempt(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, attemptKeyPrefix+id).Err()
}

func (s *RedisSessionStore) SaveRemediation(ctx context.Context, r *model.RemediationSession) error {
	return s.set(ctx, remediationKeyPrefix+r.ID, r)
}

func (s *RedisSessionStore) GetRemediation(ctx context.Context, id string) (*model.RemediationSession, error) {
	var r model.RemediationSession
	if err := s.get(ctx, remediationKeyPrefix+id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RedisSessionStore) DeleteRemediation(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, remediationKeyPrefix+id).Err()
}

func (s *RedisSessionStore) SavePractice(ctx context.Context, p *model.PracticeSession) error {
	return s.set(ctx, practiceKeyPrefix+p.ID, p)
}

func (s *RedisSessionStore) GetPractice(ctx context.Context, id string) (*model.PracticeSession, error) {
	var p model.PracticeSession
	if err := s.get(ctx, practiceKeyPrefix+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisSessionStore) DeletePractice(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, practiceKeyPrefix+id).Err()
}
