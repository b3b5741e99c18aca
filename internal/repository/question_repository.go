package repository

import (
	"edu_quiz_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository 题库只读查询加教师端管理，所有会话共享同一题库，
// 引擎只复制题目内容，从不修改题库
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindByScope 返回某测验/主题下的正式题目（不含补救题库），按题序排列
func (r *QuestionRepository) FindByScope(scopeID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("scope_id = ? AND is_remedial = ? AND remediation_for = 0", scopeID, false).
		Order("`order` asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

// FindByDifficulty 返回某 scope 下指定难度的正式题目
func (r *QuestionRepository) FindByDifficulty(scopeID string, difficulty model.Difficulty) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("scope_id = ? AND difficulty = ? AND is_remedial = ? AND remediation_for = 0", scopeID, difficulty, false).
		Order("`order` asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

// FindRelated 查找补救题库：优先返回针对原题的定向题组，
// 没有定向题组时退回该难度的通用补救题库。两者都为空时返回空列表，
// 是否报 EmptyRepository 由调用方决定。
// 补救循环只提交选项 ID，开放题在这里无法判分，从源头排除
func (r *QuestionRepository) FindRelated(originalID uint, difficulty model.Difficulty) ([]model.QuizQuestion, error) {
	var curated []model.QuizQuestion
	err := r.DB.Where("remediation_for = ? AND difficulty = ? AND question_type = ?", originalID, difficulty, model.MultipleChoice).
		Order("`order` asc, created_at asc").
		Find(&curated).Error
	if err != nil {
		return nil, err
	}
	if len(curated) > 0 {
		return curated, nil
	}

	var generic []model.QuizQuestion
	err = r.DB.Where("is_remedial = ? AND difficulty = ? AND question_type = ?", true, difficulty, model.MultipleChoice).
		Order("`order` asc, created_at asc").
		Find(&generic).Error
	return generic, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.First(&q, id).Error
	return &q, err
}

// 教师端题库管理

func (r *QuestionRepository) Create(q *model.QuizQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.QuizQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.QuizQuestion{}, id).Error
}

func (r *QuestionRepository) List(scopeID string, difficulty model.Difficulty, page, limit int) ([]model.QuizQuestion, int64, error) {
	var qs []model.QuizQuestion
	var total int64
	query := r.DB.Model(&model.QuizQuestion{})
	if scopeID != "" {
		query = query.Where("scope_id = ?", scopeID)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("`order` asc, created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}
