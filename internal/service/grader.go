package service

import "strings"

// Grader 开放题判分策略，可替换（如接入人工或模型判分）
type Grader interface {
	Grade(submitted, reference string) bool
}

// ExactMatchGrader 默认实现：去除首尾空白后不区分大小写比对参考答案
type ExactMatchGrader struct{}

func (ExactMatchGrader) Grade(submitted, reference string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(reference))
}
