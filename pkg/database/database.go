package database

import (
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.QuizQuestion{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedQuestionBank(db)

	return db, nil
}

func mcOptions(correct string, texts map[string]string) json.RawMessage {
	var opts []model.Option
	for _, label := range []string{"A", "B", "C", "D"} {
		text, ok := texts[label]
		if !ok {
			continue
		}
		opts = append(opts, model.Option{
			ID:        model.GenerateUUID(),
			Label:     label,
			Text:      text,
			IsCorrect: label == correct,
		})
	}
	raw, _ := json.Marshal(opts)
	return raw
}

// seedQuestionBank 题库为空时插入默认演示题目：一个示例测验 scope
// 加上每个难度的通用补救题库
func seedQuestionBank(db *gorm.DB) {
	var count int64
	db.Model(&model.QuizQuestion{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.QuizQuestion{
		{
			ScopeID: "c-basics", Difficulty: model.DifficultyEasy, QuestionType: model.MultipleChoice,
			Content: "C 语言中用于输出到标准输出的函数是？", Explanation: "printf 定义在 stdio.h 中，向标准输出写格式化文本。", Order: 1,
			Options: mcOptions("B", map[string]string{"A": "scanf", "B": "printf", "C": "puts_all", "D": "write_line"}),
		},
		{
			ScopeID: "c-basics", Difficulty: model.DifficultyStandard, QuestionType: model.MultipleChoice,
			Content: "int a[5]; 数组 a 最后一个元素的下标是？", Explanation: "数组下标从 0 开始，5 个元素的下标范围是 0 到 4。", Order: 2,
			Options: mcOptions("C", map[string]string{"A": "5", "B": "1", "C": "4", "D": "0"}),
		},
		{
			ScopeID: "c-basics", Difficulty: model.DifficultyStandard, QuestionType: model.MultipleChoice,
			Content: "以下哪个运算符用于取变量地址？", Explanation: "& 是取地址运算符，* 是解引用运算符。", Order: 3,
			Options: mcOptions("A", map[string]string{"A": "&", "B": "*", "C": "%", "D": "#"}),
		},
		{
			ScopeID: "c-basics", Difficulty: model.DifficultyHard, QuestionType: model.MultipleChoice,
			Content: "表达式 sizeof(char) 的值是？", Explanation: "标准规定 sizeof(char) 恒为 1。", Order: 4,
			Options: mcOptions("D", map[string]string{"A": "取决于编译器", "B": "2", "C": "4", "D": "1"}),
		},
		// 通用补救题库：各难度至少一组
		{
			IsRemedial: true, ScopeID: "c-basics", Difficulty: model.DifficultyEasy, QuestionType: model.MultipleChoice,
			Content: "C 程序的入口函数是？", Explanation: "程序从 main 函数开始执行。",
			Options: mcOptions("A", map[string]string{"A": "main", "B": "start", "C": "init", "D": "entry"}),
		},
		{
			IsRemedial: true, ScopeID: "c-basics", Difficulty: model.DifficultyStandard, QuestionType: model.MultipleChoice,
			Content: "while(0) 循环体会被执行几次？", Explanation: "条件为假时 while 循环体一次都不执行。",
			Options: mcOptions("B", map[string]string{"A": "1 次", "B": "0 次", "C": "无限次", "D": "取决于循环体"}),
		},
		{
			IsRemedial: true, ScopeID: "c-basics", Difficulty: model.DifficultyHard, QuestionType: model.MultipleChoice,
			Content: "对空指针解引用的行为是？", Explanation: "解引用空指针是未定义行为。",
			Options: mcOptions("C", map[string]string{"A": "返回 0", "B": "编译报错", "C": "未定义行为", "D": "抛出异常"}),
		},
	}

	for i := range defaults {
		db.Create(&defaults[i])
	}
}
