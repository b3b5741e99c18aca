package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

// AnswerRecord 一次作答的记录
type AnswerRecord struct {
	SelectedOptionID string    `json:"selectedOptionId,omitempty"`
	TextAnswer       string    `json:"textAnswer,omitempty"`
	IsCorrect        bool      `json:"isCorrect"`
	AnsweredAt       time.Time `json:"answeredAt"`
}

// QuestionInstance 题目的会话级副本：原题 ID 加会话唯一的实例 ID，
// 选项 ID 每次生成时重新分配，避免跨实例重放旧答案
type QuestionInstance struct {
	InstanceID   string       `json:"instanceId"`
	OriginalID   uint         `json:"originalId"`
	ScopeID      string       `json:"scopeId"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"questionType"`
	Content      string       `json:"content"`
	Answer       string       `json:"answer,omitempty"` // 开放题参考答案
	Explanation  string       `json:"explanation"`
	Options      []Option     `json:"options"`
}

// CorrectOption 返回被标记为正确的选项，选择题找不到时返回 false
func (qi *QuestionInstance) CorrectOption() (Option, bool) {
	for _, o := range qi.Options {
		if o.IsCorrect {
			return o, true
		}
	}
	return Option{}, false
}

// QuestionView 下发给学生的题目视图，不含正确性标记和参考答案
type QuestionView struct {
	InstanceID   string       `json:"instanceId"`
	QuestionType QuestionType `json:"questionType"`
	Difficulty   Difficulty   `json:"difficulty"`
	Content      string       `json:"content"`
	Options      []OptionView `json:"options,omitempty"`
}

type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

func (qi *QuestionInstance) View() *QuestionView {
	v := &QuestionView{
		InstanceID:   qi.InstanceID,
		QuestionType: qi.QuestionType,
		Difficulty:   qi.Difficulty,
		Content:      qi.Content,
	}
	for _, o := range qi.Options {
		v.Options = append(v.Options, OptionView{ID: o.ID, Label: o.Label, Text: o.Text})
	}
	return v
}

// QuizAttempt 一次测验作答：按序下发题目，状态机 IN_PROGRESS -> COMPLETED
// 不变量：len(Answers) == CurrentIndex，CurrentIndex 单调不减
type QuizAttempt struct {
	ID           string                  `json:"id"`
	UserID       uint                    `json:"userId"`
	QuizID       string                  `json:"quizId"`
	Questions    []QuestionInstance      `json:"questions"`
	Answers      map[string]AnswerRecord `json:"answers"` // key: instance id
	CurrentIndex int                     `json:"currentIndex"`
	Status       AttemptStatus           `json:"status"`
	StartedAt    time.Time               `json:"startedAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// Current 返回当前待答题目，已答完时返回 nil
func (a *QuizAttempt) Current() *QuestionInstance {
	if a.CurrentIndex >= len(a.Questions) {
		return nil
	}
	return &a.Questions[a.CurrentIndex]
}

// RemediationSession 针对单个错题的补救练习：固定难度下反复出题，
// 答对 Required 次后结束；答错不扣进度，没有次数上限
type RemediationSession struct {
	ID         string            `json:"id"`
	UserID     uint              `json:"userId"`
	AttemptID  string            `json:"attemptId"`
	QuestionID uint              `json:"questionId"` // 原错题 ID
	Difficulty Difficulty        `json:"difficulty"`
	Required   int               `json:"required"`
	Completed  int               `json:"completed"`
	Ordinal    int               `json:"ordinal"` // 下一道补救题的序号，从 1 开始
	Done       bool              `json:"remediationCompleted"`
	Current    *QuestionInstance `json:"current,omitempty"`
	StartedAt  time.Time         `json:"startedAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// PracticeSession 开放式练习：固定难度，题目只增不减，不计入成绩
type PracticeSession struct {
	ID           string                  `json:"id"`
	UserID       uint                    `json:"userId"`
	ScopeID      string                  `json:"scopeId"`
	Difficulty   Difficulty              `json:"difficulty"`
	Questions    []QuestionInstance      `json:"questions"`
	Answers      map[string]AnswerRecord `json:"answers"` // key: instance id
	CorrectCount int                     `json:"correctCount"`
	StartedAt    time.Time               `json:"startedAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// FindInstance 按实例 ID 在已下发题目中查找
func (p *PracticeSession) FindInstance(instanceID string) *QuestionInstance {
	for i := range p.Questions {
		if p.Questions[i].InstanceID == instanceID {
			return &p.Questions[i]
		}
	}
	return nil
}
