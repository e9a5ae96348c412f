package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Agent 负责把需求文本转换成 Plan。
type Agent struct {
	llm    LLMClient
	logger *zap.Logger
}

func NewAgent(llm LLMClient, logger *zap.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{llm: llm, logger: logger}, nil
}

// Plan 发送一次规划请求并解析结果，不做重试。
// 调用失败返回包装了 ErrPlannerFailed 的错误；解析失败返回 *PlanParseError。
func (a *Agent) Plan(ctx context.Context, requirements string) (Plan, error) {
	prompt := BuildPlannerPrompt(requirements)

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrPlannerFailed, err)
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		a.logger.Warn("Planner response could not be parsed", zap.Error(err))
		return Plan{}, err
	}
	a.logger.Info("Plan extracted", zap.Int("screens", len(plan.Screens)))
	return plan, nil
}
