// 批量导入题库脚本
//
// 从 JSON 文件读取题目列表写入题库，题目校验规则与教师端接口一致
// （选择题必须恰好一个正确选项，主观题必须带参考答案）。
//
// 用法: go run scripts/seed_questions.go -file questions.json
package main

import (
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/pkg/database"
	"edu_quiz_backend/pkg/logger"
	"encoding/json"
	"flag"
	"log"
	"os"
)

func main() {
	file := flag.String("file", "questions.json", "题目 JSON 文件路径")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题目文件: %v", err)
	}

	var requests []service.QuestionRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		log.Fatalf("解析题目文件失败: %v", err)
	}

	questions := service.NewQuestionService(repository.NewQuestionRepository(db))

	imported := 0
	for i, req := range requests {
		if _, err := questions.Create(req); err != nil {
			log.Printf("第 %d 题导入失败: %v", i+1, err)
			continue
		}
		imported++
	}

	log.Printf("完成！共导入 %d/%d 题", imported, len(requests))
}
