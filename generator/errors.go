package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no API key was configured for a live model call.
	ErrMissingCredential = errors.New("openai api key missing; set OPENAI_API_KEY")
	// ErrPlannerFailed wraps failures of the text-completion call made while planning.
	ErrPlannerFailed = errors.New("planner request failed")
	// ErrGenerationFailed wraps image generation and placeholder fetch failures.
	ErrGenerationFailed = errors.New("image generation failed")
)

// PlanParseError 表示模型返回的文本无法解析成 Plan。
type PlanParseError struct {
	Reason  string
	Excerpt string
	Err     error
}

func (e *PlanParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan parse failed: %s (response excerpt: %q): %v", e.Reason, e.Excerpt, e.Err)
	}
	return fmt.Sprintf("plan parse failed: %s (response excerpt: %q)", e.Reason, e.Excerpt)
}

func (e *PlanParseError) Unwrap() error { return e.Err }
