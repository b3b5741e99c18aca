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
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// QuizAttemptService 测验作答状态机：按序出题、判分、推进、汇总。
// 同一 attempt 的写操作经 sessionLocks 串行化
type QuizAttemptService struct {
	Questions QuestionBank
	Store     repository.SessionStore
	Cfg       *config.Config
	Grader    Grader
	locks     *sessionLocks
}

func NewQuizAttemptService(questions QuestionBank, store repository.SessionStore, cfg *config.Config) *QuizAttemptService {
	return &QuizAttemptService{
		Questions: questions,
		Store:     store,
		Cfg:       cfg,
		Grader:    ExactMatchGrader{},
		locks:     newSessionLocks(),
	}
}

type StartQuizResponse struct {
	AttemptID      string              `json:"attemptId"`
	TotalQuestions int                 `json:"totalQuestions"`
	FirstQuestion  *model.QuestionView `json:"firstQuestion"`
}

func (s *QuizAttemptService) Start(ctx context.Context, userID uint, quizID string) (*StartQuizResponse, error) {
	qs, err := s.Questions.FindByScope(quizID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, util.ErrScopeNotFound
	}

	attempt := &model.QuizAttempt{
		ID:        model.GenerateUUID(),
		UserID:    userID,
		QuizID:    quizID,
		Answers:   make(map[string]model.AnswerRecord),
		Status:    model.AttemptInProgress,
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for i := range qs {
		inst, err := newQuestionInstance(&qs[i])
		if err != nil {
			return nil, err
		}
		attempt.Questions = append(attempt.Questions, *inst)
	}

	if err := s.Store.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("quiz attempt started",
		zap.String("attemptId", attempt.ID),
		zap.String("quizId", quizID),
		zap.Uint("userId", userID),
		zap.Int("totalQuestions", len(attempt.Questions)))

	return &StartQuizResponse{
		AttemptID:      attempt.ID,
		TotalQuestions: len(attempt.Questions),
		FirstQuestion:  attempt.Questions[0].View(),
	}, nil
}

func (s *QuizAttemptService) loadOwnedAttempt(ctx context.Context, userID uint, attemptID string) (*model.QuizAttempt, error) {
	attempt, err := s.Store.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

type CurrentQuestionResponse struct {
	Question *model.QuestionView `json:"question"` // 已答完时为 null
	Index    int                 `json:"index"`
	Total    int                 `json:"total"`
}

// CurrentQuestion 只读，重复调用不改变作答状态
func (s *QuizAttemptService) CurrentQuestion(ctx context.Context, userID uint, attemptID string) (*CurrentQuestionResponse, error) {
	attempt, err := s.loadOwnedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	resp := &CurrentQuestionResponse{
		Index: attempt.CurrentIndex,
		Total: len(attempt.Questions),
	}
	if cur := attempt.Current(); cur != nil {
		resp.Question = cur.View()
	}
	return resp, nil
}

type AnswerQuizRequest struct {
	QuestionID string `json:"questionId" binding:"required"` // 当前题目的实例 ID
	AnswerID   string `json:"answerId"`                      // 选择题：所选选项 ID
	TextAnswer string `json:"textAnswer"`                    // 开放题：作答文本
}

type AnswerQuizResponse struct {
	IsCorrect     bool                `json:"isCorrect"`
	Explanation   string              `json:"explanation"`
	CorrectAnswer string              `json:"correctAnswer"`
	NextQuestion  *model.QuestionView `json:"nextQuestion"` // 无下一题时为 null
	AllAnswered   bool                `json:"allAnswered"`
}

// Answer 对当前题判分并推进指针。questionId 不等于当前题时拒绝，
// 防止回答已经过去或尚未下发的题目；失败的调用不产生任何状态变化
func (s *QuizAttemptService) Answer(ctx context.Context, userID uint, attemptID string, req AnswerQuizRequest) (*AnswerQuizResponse, error) {
	s.locks.Lock(attemptID)
	defer s.locks.Unlock(attemptID)

	attempt, err := s.loadOwnedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptCompleted {
		return nil, util.ErrAttemptAlreadyCompleted
	}

	cur := attempt.Current()
	if cur == nil {
		return nil, util.ErrAttemptAlreadyCompleted
	}
	if req.QuestionID != cur.InstanceID {
		return nil, util.ErrQuestionMismatch
	}

	isCorrect, correctAnswer, err := gradeInstance(cur, req.AnswerID, req.TextAnswer, s.Grader)
	if err != nil {
		return nil, err
	}

	attempt.Answers[cur.InstanceID] = model.AnswerRecord{
		SelectedOptionID: req.AnswerID,
		TextAnswer:       req.TextAnswer,
		IsCorrect:        isCorrect,
		AnsweredAt:       time.Now(),
	}
	attempt.CurrentIndex++
	attempt.UpdatedAt = time.Now()
	if attempt.CurrentIndex >= len(attempt.Questions) {
		attempt.Status = model.AttemptCompleted
	}

	if err := s.Store.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.AnswersGraded.WithLabelValues("attempt", strconv.FormatBool(isCorrect)).Inc()
	if attempt.Status == model.AttemptCompleted {
		monitoring.AttemptsCompleted.Inc()
		logger.Log.Info("quiz attempt completed",
			zap.String("attemptId", attempt.ID),
			zap.Uint("userId", userID))
	}

	resp := &AnswerQuizResponse{
		IsCorrect:     isCorrect,
		Explanation:   cur.Explanation,
		CorrectAnswer: correctAnswer,
		AllAnswered:   attempt.Status == model.AttemptCompleted,
	}
	if next := attempt.Current(); next != nil {
		resp.NextQuestion = next.View()
	}
	return resp, nil
}

type WrongQuestion struct {
	QuestionID            uint             `json:"questionId"` // 原题 ID，可用于发起补救
	QuestionText          string           `json:"questionText"`
	SubmittedAnswer       string           `json:"submittedAnswer"`
	CorrectAnswer         string           `json:"correctAnswer"`
	Explanation           string           `json:"explanation"`
	RecommendedDifficulty model.Difficulty `json:"recommendedDifficulty"`
}

type QuizSummaryResponse struct {
	AttemptID           string          `json:"attemptId"`
	Score               int             `json:"score"`
	Total               int             `json:"total"`
	Percentage          int             `json:"percentage"`
	Completed           bool            `json:"completed"`
	WrongQuestions      []WrongQuestion `json:"wrongQuestions"`
	RemediationRequired bool            `json:"remediationRequired"`
}

// Summary 汇总成绩。可以在作答中途调用（部分汇总，只统计已答题），
// 常规用法是答完后调用
func (s *QuizAttemptService) Summary(ctx context.Context, userID uint, attemptID string) (*QuizSummaryResponse, error) {
	attempt, err := s.loadOwnedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	total := len(attempt.Questions)
	score := 0
	wrong := []WrongQuestion{}
	recommended := model.Difficulty(s.Cfg.QuizSettings().DefaultRemediationDifficulty)

	for i := range attempt.Questions {
		q := &attempt.Questions[i]
		rec, answered := attempt.Answers[q.InstanceID]
		if !answered {
			continue
		}
		if rec.IsCorrect {
			score++
			continue
		}

		submitted := rec.TextAnswer
		correct := q.Answer
		for _, o := range q.Options {
			if o.ID == rec.SelectedOptionID {
				submitted = o.Text
			}
			if o.IsCorrect {
				correct = o.Text
			}
		}
		wrong = append(wrong, WrongQuestion{
			QuestionID:            q.OriginalID,
			QuestionText:          q.Content,
			SubmittedAnswer:       submitted,
			CorrectAnswer:         correct,
			Explanation:           q.Explanation,
			RecommendedDifficulty: recommended,
		})
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(score) / float64(total)))
	}

	return &QuizSummaryResponse{
		AttemptID:           attempt.ID,
		Score:               score,
		Total:               total,
		Percentage:          percentage,
		Completed:           attempt.Status == model.AttemptCompleted,
		WrongQuestions:      wrong,
		RemediationRequired: len(wrong) > 0,
	}, nil
}

// Delete 显式清理一次作答会话（过期回收是部署策略，不在状态机内）
func (s *QuizAttemptService) Delete(ctx context.Context, userID uint, attemptID string) error {
	s.locks.Lock(attemptID)
	defer s.locks.Unlock(attemptID)

	if _, err := s.loadOwnedAttempt(ctx, userID, attemptID); err != nil {
		return err
	}
	return s.Store.DeleteAttempt(ctx, attemptID)
}
