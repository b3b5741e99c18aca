package service

import (
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"encoding/json"
	"fmt"
	"testing"
)

// fakeBank 内存题库，按 QuestionRepository 的查询语义实现 QuestionBank
type fakeBank struct {
	questions []model.QuizQuestion
}

func (f *fakeBank) FindByScope(scopeID string) ([]model.QuizQuestion, error) {
	var out []model.QuizQuestion
	for _, q := range f.questions {
		if q.ScopeID == scopeID && !q.IsRemedial && q.RemediationFor == 0 {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeBank) FindByDifficulty(scopeID string, difficulty model.Difficulty) ([]model.QuizQuestion, error) {
	var out []model.QuizQuestion
	for _, q := range f.questions {
		if q.ScopeID == scopeID && q.Difficulty == difficulty && !q.IsRemedial && q.RemediationFor == 0 {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeBank) FindRelated(originalID uint, difficulty model.Difficulty) ([]model.QuizQuestion, error) {
	var curated []model.QuizQuestion
	for _, q := range f.questions {
		if q.RemediationFor == originalID && q.Difficulty == difficulty && q.QuestionType == model.MultipleChoice {
			curated = append(curated, q)
		}
	}
	if len(curated) > 0 {
		return curated, nil
	}
	var generic []model.QuizQuestion
	for _, q := range f.questions {
		if q.IsRemedial && q.Difficulty == difficulty && q.QuestionType == model.MultipleChoice {
			generic = append(generic, q)
		}
	}
	return generic, nil
}

func mcQuestion(t *testing.T, id uint, scope string, difficulty model.Difficulty, content string) model.QuizQuestion {
	t.Helper()
	opts := []model.Option{
		{Label: "A", Text: content + " 正确答案", IsCorrect: true},
		{Label: "B", Text: content + " 干扰项一"},
		{Label: "C", Text: content + " 干扰项二"},
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	q := model.QuizQuestion{
		ScopeID:      scope,
		Difficulty:   difficulty,
		QuestionType: model.MultipleChoice,
		Content:      content,
		Options:      raw,
		Explanation:  content + " 的解析",
	}
	q.ID = id
	return q
}

func openQuestion(id uint, scope string, difficulty model.Difficulty, content, answer string) model.QuizQuestion {
	q := model.QuizQuestion{
		ScopeID:      scope,
		Difficulty:   difficulty,
		QuestionType: model.OpenEnded,
		Content:      content,
		Answer:       answer,
		Explanation:  content + " 的解析",
	}
	q.ID = id
	return q
}

// scopeQuestions 构造一个 scope 下 n 道标准难度选择题
func scopeQuestions(t *testing.T, scope string, n int) []model.QuizQuestion {
	t.Helper()
	var qs []model.QuizQuestion
	for i := 1; i <= n; i++ {
		qs = append(qs, mcQuestion(t, uint(i), scope, model.DifficultyStandard, fmt.Sprintf("第%d题", i)))
	}
	return qs
}

func testConfig() *config.Config {
	return &config.Config{
		Quiz: config.QuizConfig{
			DefaultRemediationDifficulty: "standard",
			RemediationRequiredCorrect:   2,
			PracticeBatchSize:            5,
		},
	}
}

// correctOptionID 从实例里取正确选项 ID，用于构造正确作答
func correctOptionID(t *testing.T, inst *model.QuestionInstance) string {
	t.Helper()
	opt, ok := inst.CorrectOption()
	if !ok {
		t.Fatalf("instance %s has no correct option", inst.InstanceID)
	}
	return opt.ID
}

// wrongOptionID 取任意一个错误选项 ID
func wrongOptionID(t *testing.T, inst *model.QuestionInstance) string {
	t.Helper()
	for _, o := range inst.Options {
		if !o.IsCorrect {
			return o.ID
		}
	}
	t.Fatalf("instance %s has no wrong option", inst.InstanceID)
	return ""
}
