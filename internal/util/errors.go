package util

import "errors"

var (
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidLogin     = errors.New("invalid credentials")

	ErrScopeNotFound               = errors.New("scope not found")
	ErrAttemptNotFound             = errors.New("attempt not found")
	ErrQuestionMismatch            = errors.New("question does not match current position")
	ErrAttemptAlreadyCompleted     = errors.New("attempt already completed")
	ErrRemediationNotFound         = errors.New("remediation session not found")
	ErrRemediationAlreadyCompleted = errors.New("remediation already completed")
	ErrSessionNotFound             = errors.New("practice session not found")
	ErrEmptyRepository             = errors.New("no questions available at this difficulty")
	ErrNoCorrectOption             = errors.New("question has no option flagged correct")
)
