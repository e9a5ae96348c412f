package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Studio ties the planner, image generator and adherence checker to a Session.
// Each operation commits to the session only on success.
type Studio struct {
	agent   *Agent
	images  *ImageGenerator
	checker *AdherenceChecker
	logger  *zap.Logger
}

// NewStudio accepts a nil agent when no credential is configured;
// planning then fails with ErrMissingCredential.
func NewStudio(agent *Agent, images *ImageGenerator, checker *AdherenceChecker, logger *zap.Logger) (*Studio, error) {
	if images == nil {
		return nil, fmt.Errorf("image generator is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("adherence checker is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Studio{agent: agent, images: images, checker: checker, logger: logger}, nil
}

// CanPlan reports whether a planner is configured.
func (st *Studio) CanPlan() bool { return st.agent != nil }

// PlanSession 规划并提交方案；失败时不改动 session 中已有的方案。
func (st *Studio) PlanSession(ctx context.Context, sess *Session) (Plan, error) {
	plan, err := st.Plan(ctx, sess.Requirements)
	if err != nil {
		return Plan{}, err
	}
	sess.SetPlan(plan)
	st.logger.Info("Session planned", zap.String("session_id", sess.ID), zap.Int("screens", len(plan.Screens)))
	return plan, nil
}

// GenerateSession 用当前方案生成图片并整体替换 session 中的结果；失败时保留旧结果。
func (st *Studio) GenerateSession(ctx context.Context, sess *Session, opts GenerateOptions) ([]MockupItem, error) {
	plan, ok := sess.Plan()
	if !ok {
		return nil, ErrNoPlan
	}
	items, err := st.Generate(ctx, plan, opts)
	if err != nil {
		return nil, err
	}
	sess.ReplaceMockups(items)
	st.logger.Info("Session mockups replaced", zap.String("session_id", sess.ID), zap.Int("mockups", len(items)))
	return items, nil
}

// CheckMockup runs the advisory adherence check for one mockup of the session and records the report.
// The only error is an unknown mockup name.
func (st *Studio) CheckMockup(ctx context.Context, sess *Session, name string) (string, error) {
	item, ok := sess.Mockup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMockupNotFound, name)
	}
	report := st.checker.Check(ctx, PayloadFromDataURL(item.DataURL), item.ScreenSpec.Must)
	if !sess.RecordCheck(name, item.DataURL, report) {
		st.logger.Info("Mockup replaced during check, report not recorded",
			zap.String("session_id", sess.ID), zap.String("mockup", name))
	}
	return report, nil
}

// Generate runs image generation outside of a session.
func (st *Studio) Generate(ctx context.Context, plan Plan, opts GenerateOptions) ([]MockupItem, error) {
	results, err := st.images.Generate(ctx, plan, opts)
	if err != nil {
		return nil, err
	}
	return BuildMockupItems(plan, results), nil
}

// Plan runs the planner outside of a session.
func (st *Studio) Plan(ctx context.Context, requirements string) (Plan, error) {
	if st.agent == nil {
		return Plan{}, ErrMissingCredential
	}
	return st.agent.Plan(ctx, requirements)
}

// Check runs the adherence check for an image outside of a session.
func (st *Studio) Check(ctx context.Context, imageB64 string, screen Screen) string {
	return st.checker.Check(ctx, imageB64, screen.Must)
}
