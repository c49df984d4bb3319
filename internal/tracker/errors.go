package tracker

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid tracker sync input")
	ErrUnknownStatus = errors.New("unknown task status")
	ErrTaskNotFound  = errors.New("task not found in any project")
	// ErrTargetIsTaskKey aborts a sync whose target branch is itself a task key.
	ErrTargetIsTaskKey = errors.New("target branch matches a task key")
)
