package generator

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// 返回只有一个 Screen 的方案，Screen 名取需求正文的第一行。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	name := firstRequirementLine(prompt.User)
	plan := Plan{
		Screens: []Screen{{
			Name: name,
			Goal: "Preview the planned screen without a model call",
			Must: StringList{"Screen title", "Primary CTA"},
		}},
		GlobalStyle: GlobalStyle{},
	}
	out, err := json.Marshal(plan)
	if err != nil {
		return "", err
	}
	return "```json\n" + string(out) + "\n```", nil
}

func firstRequirementLine(user string) string {
	body := strings.TrimPrefix(user, "Requirements:")
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Produce the JSON") {
			break
		}
		if len([]rune(line)) > 40 {
			line = string([]rune(line)[:40])
		}
		return line
	}
	return DefaultScreenName
}
