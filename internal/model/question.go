package model

import "encoding/json"

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyStandard Difficulty = "standard"
	DifficultyHard     Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyStandard || d == DifficultyHard
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	OpenEnded      QuestionType = "open_ended"
)

// Option 选择题的单个选项，选择题必须且只能有一个正确选项
type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizQuestion 题库题目（不可变，所有会话只读取、不修改）
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	ScopeID        string          `gorm:"size:100;index;not null" json:"scopeId"` // 测验/主题/小节标识
	Difficulty     Difficulty      `gorm:"size:20;index;default:'standard'" json:"difficulty"`
	QuestionType   QuestionType    `gorm:"size:30;not null" json:"questionType"` // multiple_choice, open_ended
	Content        string          `gorm:"type:text;not null" json:"content"`    // 题干
	Options        json.RawMessage `gorm:"type:json" json:"options"`             // JSON: []Option
	Answer         string          `gorm:"type:text" json:"answer"`              // 开放题参考答案
	Explanation    string          `gorm:"type:text" json:"explanation"`
	Order          int             `gorm:"default:0" json:"order"`
	RemediationFor uint            `gorm:"index;default:0" json:"remediationFor"` // 针对某原题的补救题库，0 表示非定向
	IsRemedial     bool            `gorm:"default:false" json:"isRemedial"`       // 通用补救题库成员
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// DecodeOptions 解析题目的选项 JSON
func (q *QuizQuestion) DecodeOptions() ([]Option, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []Option
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
