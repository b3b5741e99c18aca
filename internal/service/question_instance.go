package service

import (
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/util"
)

// newQuestionInstance 把题库题目物化成会话级实例：实例 ID 和所有选项 ID
// 全部重新生成，旧会话的选项 ID 无法在新实例上重放。
// 选择题必须恰有一个正确选项，否则判分无从谈起，直接报错而不是猜
func newQuestionInstance(q *model.QuizQuestion) (*model.QuestionInstance, error) {
	opts, err := q.DecodeOptions()
	if err != nil {
		return nil, err
	}

	inst := &model.QuestionInstance{
		InstanceID:   model.GenerateUUID(),
		OriginalID:   q.ID,
		ScopeID:      q.ScopeID,
		Difficulty:   q.Difficulty,
		QuestionType: q.QuestionType,
		Content:      q.Content,
		Answer:       q.Answer,
		Explanation:  q.Explanation,
	}

	if q.QuestionType == model.MultipleChoice {
		correct := 0
		for _, o := range opts {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, util.ErrNoCorrectOption
		}
		for _, o := range opts {
			inst.Options = append(inst.Options, model.Option{
				ID:        model.GenerateUUID(),
				Label:     o.Label,
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
	}

	return inst, nil
}

// gradeInstance 对一个实例判分。选择题比对被标记为正确的选项 ID，
// 开放题交给可插拔的 Grader。返回是否正确和正确答案文本
func gradeInstance(inst *model.QuestionInstance, answerID, textAnswer string, grader Grader) (bool, string, error) {
	if inst.QuestionType == model.MultipleChoice {
		correct, ok := inst.CorrectOption()
		if !ok {
			return false, "", util.ErrNoCorrectOption
		}
		return answerID == correct.ID, correct.Text, nil
	}
	return grader.Grade(textAnswer, inst.Answer), inst.Answer, nil
}
