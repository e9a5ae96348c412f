package generator

import (
	"fmt"
	"strings"
	"text/template"
)

// MaxRequirementsChars bounds the requirements text sent to the planner.
const MaxRequirementsChars = 12000

const plannerSystem = `You are a senior product designer. Extract a precise UI plan from user requirements.
Return ONLY JSON with keys:
- screens: array of objects {name, goal, must, layout, components, tone, color, density}
- global_style: {tone, color, density, typography}
Be specific. Keep 'must' as short imperative bullet points (what MUST appear in the mockup).
`

const plannerUserTmpl = `Requirements:
%s

Produce the JSON as specified. No prose, only JSON.
`

// 每个字段的最终兜底值。
const (
	DefaultScreenName = "Screen"
	DefaultGoal       = "Show the primary task clearly"
	DefaultLayout     = "Header > Filters > Content list/table > Footer"
	DefaultTone       = "clean, institutional"
	DefaultColor      = "light with brand accent"
	DefaultDensity    = "medium"
	DefaultTypography = "Inter / Roboto"
	DefaultPlatform   = "Web"
)

var (
	DefaultMust       = []string{"Key labels present", "Visible primary CTA"}
	DefaultComponents = []string{"Search", "Filter chips", "Cards", "CTA", "Tabs"}
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

const plannerTemperature = 0.2

// BuildPlannerPrompt 生成规划请求。需求文本按字符截断到 MaxRequirementsChars。
func BuildPlannerPrompt(requirements string) Prompt {
	return Prompt{
		System:      plannerSystem,
		User:        fmt.Sprintf(plannerUserTmpl, truncateRunes(requirements, MaxRequirementsChars)),
		Temperature: plannerTemperature,
	}
}

var imagePromptTmpl = template.Must(template.New("image").Parse(`Design a {{.Platform}} UI mockup for "{{.ScreenName}}".

GOAL:
{{.Goal}}

MUST INCLUDE (no exceptions):
- {{.MustLines}}

LAYOUT SKETCH (textual blueprint, respect hierarchy and spacing):
{{.Layout}}

COMPONENT VOCABULARY:
{{.Components}}

STYLE (locked):
- Tone: {{.Tone}}
- Color: {{.Color}}
- Density: {{.Density}}
- Typography: {{.Typography}}
- Real, readable labels (no lorem)
- Accessible contrast ≥ 4.5:1
- Tap/click targets ≥ 44×44

DO NOT:
- Do not hallucinate extra tabs/sections not listed
- Do not add placeholder lorem
- Do not mirror platform UI conventions incorrectly

Output: one clean final composition centered on this single screen.
`))

type imagePromptData struct {
	Platform   string
	ScreenName string
	Goal       string
	MustLines  string
	Layout     string
	Components string
	Tone       string
	Color      string
	Density    string
	Typography string
}

// BuildImagePrompt 把 Screen + GlobalStyle 填入固定模板。
// 取值顺序：Screen 字段 → GlobalStyle 字段 → 默认值。纯函数，相同输入得到相同输出。
func BuildImagePrompt(screen Screen, style GlobalStyle, platform string) string {
	must := nonEmpty(screen.Must)
	if len(must) == 0 {
		must = DefaultMust
	}
	components := nonEmpty(screen.Components)
	if len(components) == 0 {
		components = DefaultComponents
	}

	data := imagePromptData{
		Platform:   firstNonEmpty(platform, DefaultPlatform),
		ScreenName: firstNonEmpty(screen.Name, DefaultScreenName),
		Goal:       firstNonEmpty(screen.Goal, DefaultGoal),
		MustLines:  strings.Join(must, "\n- "),
		Layout:     firstNonEmpty(screen.Layout, DefaultLayout),
		Components: strings.Join(components, ", "),
		Tone:       firstNonEmpty(screen.Tone, style.Tone, DefaultTone),
		Color:      firstNonEmpty(screen.Color, style.Color, DefaultColor),
		Density:    firstNonEmpty(screen.Density, style.Density, DefaultDensity),
		Typography: firstNonEmpty(style.Typography, DefaultTypography),
	}

	var sb strings.Builder
	// template 只引用了 imagePromptData 的字符串字段，执行不会失败。
	_ = imagePromptTmpl.Execute(&sb, data)
	return sb.String()
}

// BuildAdherencePrompt lists the must items for the vision check.
func BuildAdherencePrompt(must []string) string {
	return "Check if this UI mockup includes ALL of the following items:\n- " + strings.Join(must, "\n- ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
