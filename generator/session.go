package generator

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoPlan means a session has no committed plan yet.
	ErrNoPlan = errors.New("no plan in session; run planning first")
	// ErrMockupNotFound means the requested mockup name is not in the current set.
	ErrMockupNotFound = errors.New("mockup not found")
)

// Session 持有一份需求文档的规划/生成状态，只通过显式的读/替换方法访问。
type Session struct {
	ID           string
	Filename     string
	Requirements string
	CreatedAt    time.Time

	mu      sync.RWMutex
	plan    *Plan
	mockups []MockupItem
	checks  map[string]string
}

// NewSession 创建 session，尚未规划。
func NewSession(id, filename, requirements string) *Session {
	return &Session{
		ID:           id,
		Filename:     filename,
		Requirements: requirements,
		CreatedAt:    time.Now(),
	}
}

// Plan returns the committed plan.
func (s *Session) Plan() (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return Plan{}, false
	}
	return *s.plan, true
}

// SetPlan replaces the committed plan.
func (s *Session) SetPlan(p Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = &p
}

// ApplyPlanEdit 用用户编辑后的 JSON 文本替换方案。
// 文本不能解析为 Plan 时保留原方案并返回 false。
func (s *Session) ApplyPlanEdit(raw string) bool {
	p, err := decodePlan(raw)
	if err != nil {
		return false
	}
	s.SetPlan(p)
	return true
}

// Mockups returns a copy of the current mockup set.
func (s *Session) Mockups() []MockupItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MockupItem, len(s.mockups))
	copy(out, s.mockups)
	return out
}

// ReplaceMockups 整体替换图片集合，没有增量更新。
func (s *Session) ReplaceMockups(items []MockupItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mockups = items
	s.checks = nil
}

// RecordCheck 保存某张图最近一次的检查结论，生成新的图片集合时清空。
// dataURL 是被检查的那张图；同名图片已被替换时丢弃结论并返回 false。
func (s *Session) RecordCheck(name, dataURL, report string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := false
	for _, item := range s.mockups {
		if item.Name == name {
			current = item.DataURL == dataURL
			break
		}
	}
	if !current {
		return false
	}
	if s.checks == nil {
		s.checks = make(map[string]string)
	}
	s.checks[name] = report
	return true
}

// Checks returns a copy of the recorded adherence reports keyed by mockup name.
func (s *Session) Checks() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.checks))
	for k, v := range s.checks {
		out[k] = v
	}
	return out
}

// Mockup looks an item up by its display name.
func (s *Session) Mockup(name string) (MockupItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.mockups {
		if item.Name == name {
			return item, true
		}
	}
	return MockupItem{}, false
}
