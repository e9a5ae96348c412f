package publisher

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"ui_mockups/generator"
)

// BuildReport 生成评审用的 Markdown：每张图附上名称、prompt、MUST 列表和可选的检查结论。
// checks 以图片名为键，可以为 nil。
func BuildReport(title string, items []generator.MockupItem, checks map[string]string) string {
	var b strings.Builder
	if title == "" {
		title = "UI Mockups"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("_No mockups generated yet._\n")
		return b.String()
	}
	for _, item := range items {
		fmt.Fprintf(&b, "## %s\n\n", item.Name)
		fmt.Fprintf(&b, "![%s](%s)\n\n", item.Name, item.DataURL)
		if goal := item.ScreenSpec.Goal; goal != "" {
			fmt.Fprintf(&b, "**Goal:** %s\n\n", goal)
		}
		if len(item.ScreenSpec.Must) > 0 {
			b.WriteString("**Must include:**\n\n")
			for _, m := range item.ScreenSpec.Must {
				fmt.Fprintf(&b, "- %s\n", m)
			}
			b.WriteString("\n")
		}
		if report, ok := checks[item.Name]; ok {
			fmt.Fprintf(&b, "**Adherence:** %s\n\n", report)
		}
		fence := codeFence(item.Prompt)
		fmt.Fprintf(&b, "**Prompt used:**\n\n%stext\n%s\n%s\n\n", fence, item.Prompt, fence)
	}
	return b.String()
}

// codeFence 返回比 s 中最长的连续反引号多一个的围栏，至少三个。
func codeFence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// RenderReportHTML converts a Markdown report into a standalone HTML page.
func RenderReportHTML(title, md string) (string, error) {
	body, err := mdToHTML(md)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(title))
	b.WriteString(`<style>body{font-family:Inter,Roboto,sans-serif;max-width:1100px;margin:2em auto;padding:0 1em}img{max-width:100%;border:1px solid #ddd}pre{white-space:pre-wrap;background:#f6f6f6;padding:1em}</style>`)
	b.WriteString("</head><body>\n")
	b.WriteString(body)
	b.WriteString("</body></html>\n")
	return b.String(), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
