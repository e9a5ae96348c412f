// Package publisher 把生成结果导出为插件 bundle、PNG 文件和评审报告。
package publisher

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ui_mockups/generator"
)

// Options selects which artifacts Publish writes. Empty fields are skipped.
type Options struct {
	ImageDir   string
	BundlePath string
	ReportPath string
	Title      string
	// Checks holds adherence reports keyed by mockup name for the report.
	Checks map[string]string
}

// Result lists the files written by Publish.
type Result struct {
	Images []string
	Bundle string
	Report string
}

// Publisher writes mockup artifacts to disk.
type Publisher struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger}
}

// Publish writes the selected artifacts in order: images, bundle, report.
func (p *Publisher) Publish(items []generator.MockupItem, opts Options) (Result, error) {
	var res Result
	if opts.ImageDir != "" {
		paths, err := SaveImages(opts.ImageDir, items)
		if err != nil {
			return res, err
		}
		res.Images = paths
		p.logger.Info("Mockup images saved", zap.String("dir", opts.ImageDir), zap.Int("count", len(paths)))
	}
	if opts.BundlePath != "" {
		data, err := BuildBundle(items).JSON()
		if err != nil {
			return res, fmt.Errorf("encode bundle: %w", err)
		}
		if err := writeFile(opts.BundlePath, data); err != nil {
			return res, err
		}
		res.Bundle = opts.BundlePath
		p.logger.Info("Bundle written", zap.String("path", opts.BundlePath), zap.Int("images", len(items)))
	}
	if opts.ReportPath != "" {
		md := BuildReport(opts.Title, items, opts.Checks)
		out := md
		if ext := strings.ToLower(filepath.Ext(opts.ReportPath)); ext == ".html" || ext == ".htm" {
			rendered, err := RenderReportHTML(opts.Title, md)
			if err != nil {
				return res, err
			}
			out = rendered
		}
		if err := writeFile(opts.ReportPath, []byte(out)); err != nil {
			return res, err
		}
		res.Report = opts.ReportPath
		p.logger.Info("Review report written", zap.String("path", opts.ReportPath))
	}
	return res, nil
}

// SaveImages 把每张图按其展示名写入 dir，返回写入的路径。
func SaveImages(dir string, items []generator.MockupItem) ([]string, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(items))
	for _, item := range items {
		raw, err := base64.StdEncoding.DecodeString(generator.PayloadFromDataURL(item.DataURL))
		if err != nil {
			return paths, fmt.Errorf("decode %s: %w", item.Name, err)
		}
		path := filepath.Join(dir, filepath.Base(item.Name))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
