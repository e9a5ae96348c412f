// Package reader 把上传的需求文档转换为纯文本。
package reader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PreviewChars bounds the excerpt shown after upload.
const PreviewChars = 5000

// SupportedExtensions lists the formats with a dedicated parser.
var SupportedExtensions = []string{".txt", ".md", ".docx", ".pdf"}

// ReadText 按扩展名解析文档，任何失败都返回空字符串，不向外抛错。
func ReadText(filename string, data []byte) string {
	text, err := Extract(filename, data)
	if err != nil {
		return ""
	}
	return text
}

// Extract is ReadText with the failure reason kept, for callers that want to log it.
func Extract(filename string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reader: %s: %v", filename, r)
		}
	}()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return decodeText(data), nil
	case ".docx":
		return readDocx(data)
	case ".pdf":
		return readPDF(data)
	default:
		return decodeText(data), nil
	}
}

// Preview returns the first PreviewChars characters of text.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= PreviewChars {
		return text
	}
	return string(r[:PreviewChars])
}

// decodeText 按 BOM 识别 UTF-8/UTF-16，非法字节替换为 U+FFFD。
func decodeText(data []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		out = data
	}
	return strings.ToValidUTF8(string(out), "\uFFFD")
}

// readDocx 段落之间以换行分隔，页眉页脚的文字也会带上。
func readDocx(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	return strings.Trim(text, "\n"), nil
}

func readPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// 单页失败按空页处理
			text = ""
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
