package service

import (
	"context"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/logger"
	"edu_quiz_backend/pkg/monitoring"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// PracticeService 开放式刷题：固定难度、不计成绩、题目列表只增不减，
// 永远可以再来一题（题库非空的前提下）
type PracticeService struct {
	Questions QuestionBank
	Store     repository.SessionStore
	Cfg       *config.Config
	Grader    Grader
	locks     *sessionLocks
}

func NewPracticeService(questions QuestionBank, store repository.SessionStore, cfg *config.Config) *PracticeService {
	return &PracticeService{
		Questions: questions,
		Store:     store,
		Cfg:       cfg,
		Grader:    ExactMatchGrader{},
		locks:     newSessionLocks(),
	}
}

type StartPracticeRequest struct {
	ScopeID    string           `json:"scopeId" binding:"required"`
	Difficulty model.Difficulty `json:"difficulty" binding:"required"`
}

type StartPracticeResponse struct {
	SessionID   string                `json:"sessionId"`
	Questions   []*model.QuestionView `json:"questions"`
	ContextUsed bool                  `json:"contextUsed"`
}

func (s *PracticeService) Start(ctx context.Context, userID uint, req StartPracticeRequest) (*StartPracticeResponse, error) {
	if !req.Difficulty.Valid() {
		return nil, util.ErrScopeNotFound
	}

	// contextUsed：该 scope 在所选难度下有题时为 true；
	// 没有时退回整个 scope 的题目，scope 完全为空才算 scope 不存在
	qs, err := s.Questions.FindByDifficulty(req.ScopeID, req.Difficulty)
	if err != nil {
		return nil, err
	}
	contextUsed := len(qs) > 0
	if !contextUsed {
		qs, err = s.Questions.FindByScope(req.ScopeID)
		if err != nil {
			return nil, err
		}
		if len(qs) == 0 {
			return nil, util.ErrScopeNotFound
		}
	}

	batch := s.Cfg.QuizSettings().PracticeBatchSize
	if len(qs) > batch {
		qs = qs[:batch]
	}

	sess := &model.PracticeSession{
		ID:         model.GenerateUUID(),
		UserID:     userID,
		ScopeID:    req.ScopeID,
		Difficulty: req.Difficulty,
		Answers:    make(map[string]model.AnswerRecord),
		StartedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	views := make([]*model.QuestionView, 0, len(qs))
	for i := range qs {
		inst, err := newQuestionInstance(&qs[i])
		if err != nil {
			return nil, err
		}
		sess.Questions = append(sess.Questions, *inst)
		views = append(views, inst.View())
	}

	if err := s.Store.SavePractice(ctx, sess); err != nil {
		return nil, err
	}

	monitoring.PracticeQuestionsServed.Add(float64(len(sess.Questions)))
	logger.Log.Info("practice session started",
		zap.String("sessionId", sess.ID),
		zap.String("scopeId", req.ScopeID),
		zap.String("difficulty", string(req.Difficulty)),
		zap.Int("questions", len(sess.Questions)))

	return &StartPracticeResponse{
		SessionID:   sess.ID,
		Questions:   views,
		ContextUsed: contextUsed,
	}, nil
}

func (s *PracticeService) loadOwnedSession(ctx context.Context, userID uint, sessionID string) (*model.PracticeSession, error) {
	sess, err := s.Store.GetPractice(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return sess, nil
}

type AnswerPracticeRequest struct {
	QuestionID string `json:"questionId" binding:"required"` // 实例 ID
	AnswerID   string `json:"answerId"`
	TextAnswer string `json:"textAnswer"`
}

type AnswerPracticeResponse struct {
	IsCorrect          bool   `json:"isCorrect"`
	Explanation        string `json:"explanation"`
	CorrectAnswer      string `json:"correctAnswer"`
	QuestionsCompleted int    `json:"questionsCompleted"`
	TotalCorrect       int    `json:"totalCorrect"`
}

func (s *PracticeService) Answer(ctx context.Context, userID uint, sessionID string, req AnswerPracticeRequest) (*AnswerPracticeResponse, error) {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	inst := sess.FindInstance(req.QuestionID)
	if inst == nil {
		return nil, util.ErrQuestionMismatch
	}
	if _, answered := sess.Answers[inst.InstanceID]; answered {
		return nil, util.ErrQuestionMismatch
	}

	isCorrect, correctAnswer, err := gradeInstance(inst, req.AnswerID, req.TextAnswer, s.Grader)
	if err != nil {
		return nil, err
	}

	sess.Answers[inst.InstanceID] = model.AnswerRecord{
		SelectedOptionID: req.AnswerID,
		TextAnswer:       req.TextAnswer,
		IsCorrect:        isCorrect,
		AnsweredAt:       time.Now(),
	}
	if isCorrect {
		sess.CorrectCount++
	}
	sess.UpdatedAt = time.Now()

	if err := s.Store.SavePractice(ctx, sess); err != nil {
		return nil, err
	}

	monitoring.AnswersGraded.WithLabelValues("practice", strconv.FormatBool(isCorrect)).Inc()

	return &AnswerPracticeResponse{
		IsCorrect:          isCorrect,
		Explanation:        inst.Explanation,
		CorrectAnswer:      correctAnswer,
		QuestionsCompleted: len(sess.Answers),
		TotalCorrect:       sess.CorrectCount,
	}, nil
}

// GenerateMore 追加一题：优先选该难度下没出过的原题（按题库顺序），
// 全部出过时轮转复用——复用也生成全新实例 ID。
// 只有该难度题库为空才算内容配置错误
func (s *PracticeService) GenerateMore(ctx context.Context, userID uint, sessionID string) (*model.QuestionView, error) {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	sess, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	bank, err := s.Questions.FindByDifficulty(sess.ScopeID, sess.Difficulty)
	if err != nil {
		return nil, err
	}
	if len(bank) == 0 {
		return nil, util.ErrEmptyRepository
	}

	served := make(map[uint]bool, len(sess.Questions))
	for i := range sess.Questions {
		served[sess.Questions[i].OriginalID] = true
	}

	var pick *model.QuizQuestion
	for i := range bank {
		if !served[bank[i].ID] {
			pick = &bank[i]
			break
		}
	}
	if pick == nil {
		// 题库耗尽，确定性轮转复用
		pick = &bank[len(sess.Questions)%len(bank)]
	}

	inst, err := newQuestionInstance(pick)
	if err != nil {
		return nil, err
	}
	sess.Questions = append(sess.Questions, *inst)
	sess.UpdatedAt = time.Now()

	if err := s.Store.SavePractice(ctx, sess); err != nil {
		return nil, err
	}

	monitoring.PracticeQuestionsServed.Inc()

	return inst.View(), nil
}

// Delete 显式清理练习会话
func (s *PracticeService) Delete(ctx context.Context, userID uint, sessionID string) error {
	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.Store.DeletePractice(ctx, sessionID)
}
