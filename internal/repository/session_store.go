package repository

import (
	"context"
	"edu_quiz_backend/internal/model"
	"errors"
)

// ErrSessionMissing 存储中不存在该会话，由服务层翻译成具体的 NotFound 错误
var ErrSessionMissing = errors.New("session not found in store")

// SessionStore 进行中会话的键值存储。每种会话独立读写，
// 读取结果必须与最近一次完整写入一致；持久化方式（内存/缓存/数据库）
// 对状态机透明
type SessionStore interface {
	SaveAttempt(ctx context.Context, a *model.QuizAttempt) error
	GetAttempt(ctx context.Context, id string) (*model.QuizAttempt, error)
	DeleteAttempt(ctx context.Context, id string) error

	SaveRemediation(ctx context.Context, s *model.RemediationSession) error
	GetRemediation(ctx context.Context, id string) (*model.RemediationSession, error)
	DeleteRemediation(ctx context.Context, id string) error

	SavePractice(ctx context.Context, s *model.PracticeSession) error
	GetPractice(ctx context.Context, id string) (*model.PracticeSession, error)
	DeletePractice(ctx context.Context, id string) error
}
