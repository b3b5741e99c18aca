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

// RemediationService 错题补救循环：针对单个错题，按选定难度持续出题，
// 答对满额度后结束。答错不清零、不设上限，目标是练会而不是惩罚
type RemediationService struct {
	Questions QuestionBank
	Store     repository.SessionStore
	Cfg       *config.Config
	locks     *sessionLocks
}

func NewRemediationService(questions QuestionBank, store repository.SessionStore, cfg *config.Config) *RemediationService {
	return &RemediationService{
		Questions: questions,
		Store:     store,
		Cfg:       cfg,
		locks:     newSessionLocks(),
	}
}

type RemediationProgress struct {
	Completed int `json:"completed"`
	Required  int `json:"required"`
}

type BeginRemediationRequest struct {
	AttemptID  string           `json:"attemptId" binding:"required"`
	QuestionID uint             `json:"questionId" binding:"required"` // 原错题 ID
	Difficulty model.Difficulty `json:"difficulty"`
}

type BeginRemediationResponse struct {
	RemediationID string              `json:"remediationId"`
	Difficulty    model.Difficulty    `json:"difficulty"`
	Progress      RemediationProgress `json:"progress"`
	Question      *model.QuestionView `json:"question"`
}

// nextQuestion 生成下一道补救题：定向题组优先、退回通用题库，
// 按 (ordinal-1) mod 题组大小 确定性轮转——题组有意做得很小，重复是预期行为
func (s *RemediationService) nextQuestion(sess *model.RemediationSession) error {
	bank, err := s.Questions.FindRelated(sess.QuestionID, sess.Difficulty)
	if err != nil {
		return err
	}
	if len(bank) == 0 {
		return util.ErrEmptyRepository
	}

	idx := (sess.Ordinal - 1) % len(bank)
	inst, err := newQuestionInstance(&bank[idx])
	if err != nil {
		return err
	}
	sess.Current = inst
	return nil
}

func (s *RemediationService) Begin(ctx context.Context, userID uint, req BeginRemediationRequest) (*BeginRemediationResponse, error) {
	quiz := s.Cfg.QuizSettings()

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.Difficulty(quiz.DefaultRemediationDifficulty)
	}
	if !difficulty.Valid() {
		return nil, util.ErrScopeNotFound
	}

	// 核对作答会话存在且归属当前学生
	attempt, err := s.Store.GetAttempt(ctx, req.AttemptID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	sess := &model.RemediationSession{
		ID:         model.GenerateUUID(),
		UserID:     userID,
		AttemptID:  req.AttemptID,
		QuestionID: req.QuestionID,
		Difficulty: difficulty,
		Required:   quiz.RemediationRequiredCorrect,
		Completed:  0,
		Ordinal:    1,
		StartedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.nextQuestion(sess); err != nil {
		return nil, err
	}

	if err := s.Store.SaveRemediation(ctx, sess); err != nil {
		return nil, err
	}

	logger.Log.Info("remediation started",
		zap.String("remediationId", sess.ID),
		zap.String("attemptId", req.AttemptID),
		zap.Uint("questionId", req.QuestionID),
		zap.String("difficulty", string(difficulty)))

	return &BeginRemediationResponse{
		RemediationID: sess.ID,
		Difficulty:    sess.Difficulty,
		Progress:      RemediationProgress{Completed: 0, Required: sess.Required},
		Question:      sess.Current.View(),
	}, nil
}

type SubmitRemedialRequest struct {
	AnswerID string `json:"answerId" binding:"required"`
}

type SubmitRemedialResponse struct {
	IsCorrect            bool                `json:"isCorrect"`
	Explanation          string              `json:"explanation"`
	Progress             RemediationProgress `json:"progress"`
	RemediationCompleted bool                `json:"remediationCompleted"`
	NextQuestion         *model.QuestionView `json:"nextQuestion"` // 完成后为 null
}

// Submit 对当前补救题判分。答对 Completed+1，满额度终止；
// 否则按同样规则生成下一题。Completed 只增不减
func (s *RemediationService) Submit(ctx context.Context, userID uint, remediationID string, req SubmitRemedialRequest) (*SubmitRemedialResponse, error) {
	s.locks.Lock(remediationID)
	defer s.locks.Unlock(remediationID)

	sess, err := s.Store.GetRemediation(ctx, remediationID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return nil, util.ErrRemediationNotFound
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if sess.Done {
		return nil, util.ErrRemediationAlreadyCompleted
	}
	if sess.Current == nil {
		return nil, util.ErrRemediationNotFound
	}

	cur := sess.Current
	isCorrect, _, err := gradeInstance(cur, req.AnswerID, "", ExactMatchGrader{})
	if err != nil {
		return nil, err
	}

	if isCorrect {
		sess.Completed++
	}
	sess.UpdatedAt = time.Now()

	if sess.Completed >= sess.Required {
		sess.Done = true
		sess.Current = nil
	} else {
		sess.Ordinal++
		if err := s.nextQuestion(sess); err != nil {
			return nil, err
		}
	}

	if err := s.Store.SaveRemediation(ctx, sess); err != nil {
		return nil, err
	}

	monitoring.AnswersGraded.WithLabelValues("remediation", strconv.FormatBool(isCorrect)).Inc()
	if sess.Done {
		monitoring.RemediationsCompleted.Inc()
		logger.Log.Info("remediation completed",
			zap.String("remediationId", sess.ID),
			zap.Int("ordinal", sess.Ordinal))
	}

	resp := &SubmitRemedialResponse{
		IsCorrect:            isCorrect,
		Explanation:          cur.Explanation,
		Progress:             RemediationProgress{Completed: sess.Completed, Required: sess.Required},
		RemediationCompleted: sess.Done,
	}
	if sess.Current != nil {
		resp.NextQuestion = sess.Current.View()
	}
	return resp, nil
}

// Delete 显式清理补救会话
func (s *RemediationService) Delete(ctx context.Context, userID uint, remediationID string) error {
	s.locks.Lock(remediationID)
	defer s.locks.Unlock(remediationID)

	sess, err := s.Store.GetRemediation(ctx, remediationID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return util.ErrRemediationNotFound
		}
		return err
	}
	if sess.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.Store.DeleteRemediation(ctx, remediationID)
}
