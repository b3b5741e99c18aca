package service

import (
	"context"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/util"
	"errors"
	"testing"
	"time"
)

// practiceFixture easy 题 2 道（ID 1-2），standard 题 3 道（ID 3-5）
func practiceFixture(t *testing.T) []model.QuizQuestion {
	t.Helper()
	return []model.QuizQuestion{
		mcQuestion(t, 1, "pointers", model.DifficultyEasy, "入门题一"),
		mcQuestion(t, 2, "pointers", model.DifficultyEasy, "入门题二"),
		mcQuestion(t, 3, "pointers", model.DifficultyStandard, "标准题一"),
		mcQuestion(t, 4, "pointers", model.DifficultyStandard, "标准题二"),
		mcQuestion(t, 5, "pointers", model.DifficultyStandard, "标准题三"),
	}
}

func newPracticeService(t *testing.T, questions []model.QuizQuestion) (*PracticeService, *repository.MemorySessionStore) {
	t.Helper()
	store := repository.NewMemorySessionStore()
	return NewPracticeService(&fakeBank{questions: questions}, store, testConfig()), store
}

func TestPracticeStart(t *testing.T) {
	ctx := context.Background()

	t.Run("按难度过滤并标记contextUsed", func(t *testing.T) {
		svc, _ := newPracticeService(t, practiceFixture(t))

		resp, err := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if !resp.ContextUsed {
			t.Error("ContextUsed should be true when scope has matching questions")
		}
		if len(resp.Questions) != 2 {
			t.Errorf("questions = %d, want 2", len(resp.Questions))
		}
		for _, q := range resp.Questions {
			if q.Difficulty != model.DifficultyEasy {
				t.Errorf("question difficulty = %q, want easy", q.Difficulty)
			}
		}
	})

	t.Run("难度无题时退回整个scope", func(t *testing.T) {
		svc, _ := newPracticeService(t, practiceFixture(t))

		resp, err := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyHard})
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if resp.ContextUsed {
			t.Error("ContextUsed should be false on fallback")
		}
		if len(resp.Questions) != 5 {
			t.Errorf("questions = %d, want all 5 from scope", len(resp.Questions))
		}
	})

	t.Run("首批数量受配置上限约束", func(t *testing.T) {
		cfg := testConfig()
		cfg.Quiz.PracticeBatchSize = 2
		store := repository.NewMemorySessionStore()
		svc := NewPracticeService(&fakeBank{questions: practiceFixture(t)}, store, cfg)

		resp, err := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyStandard})
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if len(resp.Questions) != 2 {
			t.Errorf("questions = %d, want batch limit 2", len(resp.Questions))
		}
	})

	t.Run("空scope报不存在", func(t *testing.T) {
		svc, _ := newPracticeService(t, nil)

		_, err := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "nothing", Difficulty: model.DifficultyEasy})
		if !errors.Is(err, util.ErrScopeNotFound) {
			t.Errorf("err = %v, want ErrScopeNotFound", err)
		}
	})
}

func TestPracticeAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("计分并返回解析", func(t *testing.T) {
		svc, store := newPracticeService(t, practiceFixture(t))
		start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

		sess, _ := store.GetPractice(ctx, start.SessionID)
		first := &sess.Questions[0]
		resp, err := svc.Answer(ctx, 1, start.SessionID, AnswerPracticeRequest{
			QuestionID: first.InstanceID,
			AnswerID:   correctOptionID(t, first),
		})
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if !resp.IsCorrect || resp.TotalCorrect != 1 || resp.QuestionsCompleted != 1 {
			t.Errorf("resp = %+v, want correct 1/1", resp)
		}

		second := &sess.Questions[1]
		resp, err = svc.Answer(ctx, 1, start.SessionID, AnswerPracticeRequest{
			QuestionID: second.InstanceID,
			AnswerID:   wrongOptionID(t, second),
		})
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if resp.IsCorrect || resp.TotalCorrect != 1 || resp.QuestionsCompleted != 2 {
			t.Errorf("resp = %+v, want wrong with 1 correct of 2", resp)
		}
	})

	t.Run("同一实例不可重复作答", func(t *testing.T) {
		svc, store := newPracticeService(t, practiceFixture(t))
		start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

		sess, _ := store.GetPractice(ctx, start.SessionID)
		first := &sess.Questions[0]
		req := AnswerPracticeRequest{QuestionID: first.InstanceID, AnswerID: correctOptionID(t, first)}
		if _, err := svc.Answer(ctx, 1, start.SessionID, req); err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if _, err := svc.Answer(ctx, 1, start.SessionID, req); !errors.Is(err, util.ErrQuestionMismatch) {
			t.Errorf("err = %v, want ErrQuestionMismatch on replay", err)
		}
	})

	t.Run("未下发的实例拒绝", func(t *testing.T) {
		svc, _ := newPracticeService(t, practiceFixture(t))
		start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

		_, err := svc.Answer(ctx, 1, start.SessionID, AnswerPracticeRequest{QuestionID: "unknown", AnswerID: "x"})
		if !errors.Is(err, util.ErrQuestionMismatch) {
			t.Errorf("err = %v, want ErrQuestionMismatch", err)
		}
	})

	t.Run("他人的会话不可作答", func(t *testing.T) {
		svc, store := newPracticeService(t, practiceFixture(t))
		start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

		sess, _ := store.GetPractice(ctx, start.SessionID)
		first := &sess.Questions[0]
		_, err := svc.Answer(ctx, 2, start.SessionID, AnswerPracticeRequest{
			QuestionID: first.InstanceID,
			AnswerID:   correctOptionID(t, first),
		})
		if !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestPracticeGenerateMore(t *testing.T) {
	ctx := context.Background()

	t.Run("先出未见过的题再轮转复用", func(t *testing.T) {
		svc, store := newPracticeService(t, practiceFixture(t))

		// 从空会话开始，逐题追加，观察完整的选题顺序
		sess := &model.PracticeSession{
			ID:         model.GenerateUUID(),
			UserID:     1,
			ScopeID:    "pointers",
			Difficulty: model.DifficultyStandard,
			Answers:    make(map[string]model.AnswerRecord),
			StartedAt:  time.Now(),
		}
		if err := store.SavePractice(ctx, sess); err != nil {
			t.Fatalf("SavePractice: %v", err)
		}

		// standard 题库为 [3 4 5]：前三次各不相同，第四次回到题库头部
		want := []uint{3, 4, 5, 3}
		for i, expected := range want {
			if _, err := svc.GenerateMore(ctx, 1, sess.ID); err != nil {
				t.Fatalf("GenerateMore %d: %v", i, err)
			}
			loaded, _ := store.GetPractice(ctx, sess.ID)
			got := loaded.Questions[len(loaded.Questions)-1].OriginalID
			if got != expected {
				t.Fatalf("step %d OriginalID = %d, want %d", i, got, expected)
			}
		}
	})

	t.Run("复用生成全新实例", func(t *testing.T) {
		svc, store := newPracticeService(t, []model.QuizQuestion{
			mcQuestion(t, 1, "pointers", model.DifficultyEasy, "唯一的题"),
		})
		start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

		if _, err := svc.GenerateMore(ctx, 1, start.SessionID); err != nil {
			t.Fatalf("GenerateMore: %v", err)
		}
		sess, _ := store.GetPractice(ctx, start.SessionID)
		if len(sess.Questions) != 2 {
			t.Fatalf("questions = %d, want 2", len(sess.Questions))
		}
		a, b := sess.Questions[0], sess.Questions[1]
		if a.OriginalID != b.OriginalID {
			t.Error("single-question bank must recycle the same original")
		}
		if a.InstanceID == b.InstanceID {
			t.Error("recycled question must get a fresh instance id")
		}
		if a.Options[0].ID == b.Options[0].ID {
			t.Error("recycled question must get fresh option ids")
		}
	})

	t.Run("该难度题库为空才报内容错误", func(t *testing.T) {
		svc, store := newPracticeService(t, practiceFixture(t))

		sess := &model.PracticeSession{
			ID:         model.GenerateUUID(),
			UserID:     1,
			ScopeID:    "pointers",
			Difficulty: model.DifficultyHard,
			Answers:    make(map[string]model.AnswerRecord),
		}
		if err := store.SavePractice(ctx, sess); err != nil {
			t.Fatalf("SavePractice: %v", err)
		}

		if _, err := svc.GenerateMore(ctx, 1, sess.ID); !errors.Is(err, util.ErrEmptyRepository) {
			t.Errorf("err = %v, want ErrEmptyRepository", err)
		}
	})

	t.Run("不存在的会话报NotFound", func(t *testing.T) {
		svc, _ := newPracticeService(t, practiceFixture(t))

		if _, err := svc.GenerateMore(ctx, 1, "missing"); !errors.Is(err, util.ErrSessionNotFound) {
			t.Errorf("err = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestPracticeDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPracticeService(t, practiceFixture(t))
	start, _ := svc.Start(ctx, 1, StartPracticeRequest{ScopeID: "pointers", Difficulty: model.DifficultyEasy})

	if err := svc.Delete(ctx, 2, start.SessionID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(ctx, 1, start.SessionID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GenerateMore(ctx, 1, start.SessionID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
