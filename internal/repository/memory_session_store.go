package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"encoding/json"
	"sync"
)

// MemorySessionStore 进程内会话存储，用于单机部署和测试。
// 和 Redis 实现一样按 JSON blob 存取，读写不共享可变引用
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]byte)}
}

func (s *MemorySessionStore) set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) get(key string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionMissing
	}
	return json.Unmarshal(data, v)
}

func (s *MemorySessionStore) del(key string) {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
}

func (s *MemorySessionStore) SaveAttempt(ctx context.Context, a *model.QuizAttempt) error {
	return s.set(attemptKeyPrefix+a.ID, a)
}

func (s *MemorySessionStore) GetAttempt(ctx context.Context, id string) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := s.get(attemptKeyPrefix+id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MemorySessionStore) DeleteAttempt(ctx context.Context, id string) error {
	s.del(attemptKeyPrefix + id)
	return nil
}

func (s *MemorySessionStore) SaveRemediation(ctx context.Context, r *model.RemediationSession) error {
	return s.set(remediationKeyPrefix+r.ID, r)
}

func (s *MemorySessionStore) GetRemediation(ctx context.Context, id string) (*model.RemediationSession, error) {
	var r model.RemediationSession
	if err := s.get(remediationKeyPrefix+id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MemorySessionStore) DeleteRemediation(ctx context.Context, id string) error {
	s.del(remediationKeyPrefix + id)
	return nil
}

func (s *MemorySessionStore) SavePractice(ctx context.Context, p *model.PracticeSession) error {
	return s.set(practiceKeyPrefix+p.ID, p)
}

func (s *MemorySessionStore) GetPractice(ctx context.Context, id string) (*model.PracticeSession, error) {
	var p model.PracticeSession
	if err := s.get(practiceKeyPrefix+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MemorySessionStore) DeletePractice(ctx context.Context, id string) error {
	s.del(practiceKeyPrefix + id)
	return nil
}
