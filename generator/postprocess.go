package generator

import (
	"encoding/json"
	"errors"
	"strings"
)

const excerptLimit = 200

// ParsePlan 把模型返回的文本解析为 Plan。
// 先整体按 JSON 解析；失败时取第一个 "{" 到最后一个 "}" 之间的子串再解析一次。
// 两次都失败返回 *PlanParseError，不返回任何部分结果。
func ParsePlan(raw string) (Plan, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return Plan{}, &PlanParseError{Reason: "model returned empty response"}
	}

	plan, directErr := decodePlan(body)
	if directErr == nil {
		return plan, nil
	}

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start == -1 || end == -1 || end < start {
		return Plan{}, &PlanParseError{
			Reason:  "no JSON object found in response",
			Excerpt: truncate(body, excerptLimit),
			Err:     directErr,
		}
	}

	plan, err := decodePlan(body[start : end+1])
	if err != nil {
		return Plan{}, &PlanParseError{
			Reason:  "embedded JSON object is invalid",
			Excerpt: truncate(body, excerptLimit),
			Err:     err,
		}
	}
	return plan, nil
}

var errNotObject = errors.New("plan must be a JSON object")

// decodePlan 只接受 JSON 对象；null、数组等合法 JSON 也视为失败。
func decodePlan(s string) (Plan, error) {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return Plan{}, errNotObject
	}
	var plan Plan
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
