package service

import "edu_quiz_backend/internal/model"

// QuestionBank 引擎对题库的只读视图，*repository.QuestionRepository 实现了它
type QuestionBank interface {
	FindByScope(scopeID string) ([]model.QuizQuestion, error)
	FindByDifficulty(scopeID string, difficulty model.Difficulty) ([]model.QuizQuestion, error)
	FindRelated(originalID uint, difficulty model.Difficulty) ([]model.QuizQuestion, error)
}
