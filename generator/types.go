package generator

import (
	"encoding/json"
	"fmt"
)

// GlobalStyle 是整份方案的默认风格，单个 Screen 未填写时回落到这里。
type GlobalStyle struct {
	Tone       string `json:"tone,omitempty"`
	Color      string `json:"color,omitempty"`
	Density    string `json:"density,omitempty"`
	Typography string `json:"typography,omitempty"`
}

// Screen 描述一个界面。除 Name 外都可以为空。
type Screen struct {
	Name       string     `json:"name"`
	Goal       string     `json:"goal,omitempty"`
	Must       StringList `json:"must,omitempty"`
	Layout     string     `json:"layout,omitempty"`
	Components StringList `json:"components,omitempty"`
	Tone       string     `json:"tone,omitempty"`
	Color      string     `json:"color,omitempty"`
	Density    string     `json:"density,omitempty"`
}

// Plan is the structured UI plan extracted from a requirements document.
type Plan struct {
	Screens     []Screen    `json:"screens"`
	GlobalStyle GlobalStyle `json:"global_style"`
}

// ScreenByName returns the first screen whose name matches.
// Unnamed screens match DefaultScreenName, the name their mockups carry.
func (p Plan) ScreenByName(name string) (Screen, bool) {
	for _, s := range p.Screens {
		if firstNonEmpty(s.Name, DefaultScreenName) == name {
			return s, true
		}
	}
	return Screen{}, false
}

// StringList accepts either a JSON array of strings or a single string.
// Models occasionally collapse one-item lists into a bare string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected string or array of strings: %s", string(data))
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = StringList{single}
	return nil
}

// MockupResult 是一次生成得到的单张图片。Index 从 1 开始，按屏幕内生成顺序递增。
type MockupResult struct {
	Screen string `json:"screen"`
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
	Image  string `json:"-"` // base64
}

// MockupItem 是面向展示的包装，附带来源 Screen。
type MockupItem struct {
	Name       string       `json:"name"`
	DataURL    string       `json:"data_url"`
	Prompt     string       `json:"prompt"`
	Result     MockupResult `json:"result"`
	ScreenSpec Screen       `json:"screen_spec"`
}

// GenerateOptions controls one image generation run.
type GenerateOptions struct {
	Platform   string
	NPerScreen int
	Size       string
}
