package service

import (
	"edu_quiz_backend/internal/model"
	"encoding/json"
	"testing"
)

func optionsJSON(t *testing.T, opts []model.Option) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	return raw
}

func TestQuestionRequestValidate(t *testing.T) {
	base := func(t *testing.T) QuestionRequest {
		return QuestionRequest{
			ScopeID:      "pointers",
			QuestionType: model.MultipleChoice,
			Content:      "题干",
			Options: optionsJSON(t, []model.Option{
				{Label: "A", Text: "甲", IsCorrect: true},
				{Label: "B", Text: "乙"},
			}),
		}
	}

	t.Run("合法选择题通过", func(t *testing.T) {
		req := base(t)
		if err := req.validate(); err != nil {
			t.Errorf("validate: %v", err)
		}
		if req.Difficulty != model.DifficultyStandard {
			t.Errorf("difficulty default = %q, want standard", req.Difficulty)
		}
	})

	t.Run("非法难度拒绝", func(t *testing.T) {
		req := base(t)
		req.Difficulty = "brutal"
		if err := req.validate(); err == nil {
			t.Error("expected error for invalid difficulty")
		}
	})

	t.Run("无正确选项拒绝", func(t *testing.T) {
		req := base(t)
		req.Options = optionsJSON(t, []model.Option{
			{Label: "A", Text: "甲"},
			{Label: "B", Text: "乙"},
		})
		if err := req.validate(); err == nil {
			t.Error("expected error with zero correct options")
		}
	})

	t.Run("多个正确选项拒绝", func(t *testing.T) {
		req := base(t)
		req.Options = optionsJSON(t, []model.Option{
			{Label: "A", Text: "甲", IsCorrect: true},
			{Label: "B", Text: "乙", IsCorrect: true},
		})
		if err := req.validate(); err == nil {
			t.Error("expected error with two correct options")
		}
	})

	t.Run("选项少于两个拒绝", func(t *testing.T) {
		req := base(t)
		req.Options = optionsJSON(t, []model.Option{
			{Label: "A", Text: "甲", IsCorrect: true},
		})
		if err := req.validate(); err == nil {
			t.Error("expected error with a single option")
		}
	})

	t.Run("开放题必须带参考答案", func(t *testing.T) {
		req := QuestionRequest{
			ScopeID:      "pointers",
			QuestionType: model.OpenEnded,
			Content:      "解释指针",
		}
		if err := req.validate(); err == nil {
			t.Error("expected error without reference answer")
		}
		req.Answer = "内存地址"
		if err := req.validate(); err != nil {
			t.Errorf("validate: %v", err)
		}
	})

	t.Run("未知题型拒绝", func(t *testing.T) {
		req := base(t)
		req.QuestionType = "true_false"
		if err := req.validate(); err == nil {
			t.Error("expected error for unknown question type")
		}
	})

	t.Run("补救题必须是选择题", func(t *testing.T) {
		req := QuestionRequest{
			ScopeID:      "pointers",
			QuestionType: model.OpenEnded,
			Content:      "解释指针",
			Answer:       "内存地址",
			IsRemedial:   true,
		}
		if err := req.validate(); err == nil {
			t.Error("expected error for open_ended generic remedial")
		}

		req.IsRemedial = false
		req.RemediationFor = 7
		if err := req.validate(); err == nil {
			t.Error("expected error for open_ended curated remedial")
		}
	})
}
