package service

import (
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"encoding/json"
	"errors"
)

// QuestionService 教师端题库管理。题目一经下发即不可变，
// 这里的增删改只影响后续新建的会话
type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type QuestionRequest struct {
	ScopeID        string             `json:"scopeId" binding:"required"`
	Difficulty     model.Difficulty   `json:"difficulty"`
	QuestionType   model.QuestionType `json:"questionType" binding:"required"`
	Content        string             `json:"content" binding:"required"`
	Options        json.RawMessage    `json:"options"`
	Answer         string             `json:"answer"`
	Explanation    string             `json:"explanation"`
	Order          int                `json:"order"`
	RemediationFor uint               `json:"remediationFor"`
	IsRemedial     bool               `json:"isRemedial"`
}

func (r *QuestionRequest) validate() error {
	if r.Difficulty == "" {
		r.Difficulty = model.DifficultyStandard
	}
	if !r.Difficulty.Valid() {
		return errors.New("difficulty must be easy, standard or hard")
	}

	switch r.QuestionType {
	case model.MultipleChoice:
		var opts []model.Option
		if err := json.Unmarshal(r.Options, &opts); err != nil {
			return errors.New("options must be a JSON array")
		}
		if len(opts) < 2 {
			return errors.New("multiple_choice question needs at least 2 options")
		}
		correct := 0
		for _, o := range opts {
			if o.IsCorrect {
				correct++
			}
		}
		// 恰好一个正确选项，判分依赖这一点
		if correct != 1 {
			return errors.New("multiple_choice question must have exactly one correct option")
		}
	case model.OpenEnded:
		if r.Answer == "" {
			return errors.New("open_ended question needs a reference answer")
		}
	default:
		return errors.New("questionType must be multiple_choice or open_ended")
	}

	// 补救循环按选项 ID 判分，开放题放进补救题库永远无法答对
	if (r.IsRemedial || r.RemediationFor != 0) && r.QuestionType != model.MultipleChoice {
		return errors.New("remedial questions must be multiple_choice")
	}
	return nil
}

func (s *QuestionService) Create(req QuestionRequest) (*model.QuizQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	q := &model.QuizQuestion{
		ScopeID:        req.ScopeID,
		Difficulty:     req.Difficulty,
		QuestionType:   req.QuestionType,
		Content:        req.Content,
		Options:        req.Options,
		Answer:         req.Answer,
		Explanation:    req.Explanation,
		Order:          req.Order,
		RemediationFor: req.RemediationFor,
		IsRemedial:     req.IsRemedial,
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.QuizQuestion, error) {
	return s.Repo.FindByID(id)
}

func (s *QuestionService) List(scopeID string, difficulty model.Difficulty, page, limit int) ([]model.QuizQuestion, int64, error) {
	return s.Repo.List(scopeID, difficulty, page, limit)
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.QuizQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	q.ScopeID = req.ScopeID
	q.Difficulty = req.Difficulty
	q.QuestionType = req.QuestionType
	q.Content = req.Content
	q.Options = req.Options
	q.Answer = req.Answer
	q.Explanation = req.Explanation
	q.Order = req.Order
	q.RemediationFor = req.RemediationFor
	q.IsRemedial = req.IsRemedial
	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
