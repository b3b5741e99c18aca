package service

import (
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/util"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewQuestionInstance(t *testing.T) {
	t.Run("两次物化的ID互不相同", func(t *testing.T) {
		q := mcQuestion(t, 7, "pointers", model.DifficultyStandard, "指针运算")

		a, err := newQuestionInstance(&q)
		if err != nil {
			t.Fatalf("newQuestionInstance: %v", err)
		}
		b, err := newQuestionInstance(&q)
		if err != nil {
			t.Fatalf("newQuestionInstance: %v", err)
		}

		if a.InstanceID == b.InstanceID {
			t.Error("instance ids should differ per materialization")
		}
		if a.OriginalID != 7 || b.OriginalID != 7 {
			t.Errorf("OriginalID = %d/%d, want 7", a.OriginalID, b.OriginalID)
		}
		for i := range a.Options {
			if a.Options[i].ID == b.Options[i].ID {
				t.Errorf("option %d id reused across instances", i)
			}
		}
	})

	t.Run("保留选项顺序和正确性标记", func(t *testing.T) {
		q := mcQuestion(t, 1, "pointers", model.DifficultyStandard, "题干")

		inst, err := newQuestionInstance(&q)
		if err != nil {
			t.Fatalf("newQuestionInstance: %v", err)
		}
		if len(inst.Options) != 3 {
			t.Fatalf("options = %d, want 3", len(inst.Options))
		}
		correct, ok := inst.CorrectOption()
		if !ok || correct.Label != "A" {
			t.Errorf("correct option = %+v, want label A", correct)
		}
	})

	t.Run("无正确选项直接报错", func(t *testing.T) {
		raw, _ := json.Marshal([]model.Option{
			{Label: "A", Text: "甲"},
			{Label: "B", Text: "乙"},
		})
		q := model.QuizQuestion{
			ScopeID:      "pointers",
			QuestionType: model.MultipleChoice,
			Content:      "坏数据",
			Options:      raw,
		}

		if _, err := newQuestionInstance(&q); !errors.Is(err, util.ErrNoCorrectOption) {
			t.Errorf("err = %v, want ErrNoCorrectOption", err)
		}
	})

	t.Run("多个正确选项同样报错", func(t *testing.T) {
		raw, _ := json.Marshal([]model.Option{
			{Label: "A", Text: "甲", IsCorrect: true},
			{Label: "B", Text: "乙", IsCorrect: true},
		})
		q := model.QuizQuestion{
			ScopeID:      "pointers",
			QuestionType: model.MultipleChoice,
			Content:      "坏数据",
			Options:      raw,
		}

		if _, err := newQuestionInstance(&q); !errors.Is(err, util.ErrNoCorrectOption) {
			t.Errorf("err = %v, want ErrNoCorrectOption", err)
		}
	})

	t.Run("开放题不携带选项", func(t *testing.T) {
		q := openQuestion(3, "pointers", model.DifficultyEasy, "解释悬垂指针", "指向已释放内存的指针")

		inst, err := newQuestionInstance(&q)
		if err != nil {
			t.Fatalf("newQuestionInstance: %v", err)
		}
		if len(inst.Options) != 0 {
			t.Errorf("options = %d, want none", len(inst.Options))
		}
		if inst.Answer != "指向已释放内存的指针" {
			t.Errorf("Answer = %q", inst.Answer)
		}
	})
}

func TestGradeInstance(t *testing.T) {
	t.Run("选择题按选项ID比对", func(t *testing.T) {
		q := mcQuestion(t, 1, "pointers", model.DifficultyStandard, "题干")
		inst, _ := newQuestionInstance(&q)

		correct, correctAnswer, err := gradeInstance(inst, correctOptionID(t, inst), "", ExactMatchGrader{})
		if err != nil {
			t.Fatalf("gradeInstance: %v", err)
		}
		if !correct || correctAnswer != "题干 正确答案" {
			t.Errorf("got %v %q", correct, correctAnswer)
		}

		wrong, _, err := gradeInstance(inst, wrongOptionID(t, inst), "", ExactMatchGrader{})
		if err != nil {
			t.Fatalf("gradeInstance: %v", err)
		}
		if wrong {
			t.Error("distractor graded as correct")
		}
	})

	t.Run("开放题交给Grader", func(t *testing.T) {
		q := openQuestion(1, "pointers", model.DifficultyEasy, "问", "Answer")
		inst, _ := newQuestionInstance(&q)

		cases := []struct {
			submitted string
			want      bool
		}{
			{"Answer", true},
			{"  answer  ", true},
			{"ANSWER", true},
			{"wrong", false},
			{"", false},
		}
		for _, c := range cases {
			got, _, err := gradeInstance(inst, "", c.submitted, ExactMatchGrader{})
			if err != nil {
				t.Fatalf("gradeInstance(%q): %v", c.submitted, err)
			}
			if got != c.want {
				t.Errorf("Grade(%q) = %v, want %v", c.submitted, got, c.want)
			}
		}
	})
}

func TestQuestionViewOmitsAnswers(t *testing.T) {
	q := mcQuestion(t, 1, "pointers", model.DifficultyStandard, "题干")
	inst, _ := newQuestionInstance(&q)

	data, err := json.Marshal(inst.View())
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if _, ok := decoded["answer"]; ok {
		t.Error("view must not carry the reference answer")
	}
	opts, _ := decoded["options"].([]interface{})
	for i, o := range opts {
		fields := o.(map[string]interface{})
		if _, ok := fields["isCorrect"]; ok {
			t.Errorf("option %d leaks isCorrect", i)
		}
	}
}
