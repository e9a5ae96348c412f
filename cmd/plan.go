package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ui_mockups/generator"
	"ui_mockups/reader"
)

func newPlanCmd(a *app) *cobra.Command {
	var docPath, outPath string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Extract a screen plan from a requirements document",
		RunE: func(cmd *cobra.Command, args []string) error {
			studio, err := buildStudio(a.cfg, a.log)
			if err != nil {
				return err
			}
			plan, err := a.planDocument(studio, docPath)
			if err != nil {
				return err
			}
			return writePlan(cmd, plan, outPath)
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "requirements document (.txt, .md, .docx, .pdf)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write plan JSON here instead of stdout")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}

func (a *app) planDocument(studio *generator.Studio, docPath string) (generator.Plan, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return generator.Plan{}, fmt.Errorf("read document: %w", err)
	}
	text, err := reader.Extract(filepath.Base(docPath), data)
	if err != nil {
		a.log.Warn("Document could not be read, planning from empty text", zap.String("path", docPath), zap.Error(err))
	}
	a.log.Info("Document loaded", zap.String("path", docPath), zap.Int("chars", len([]rune(text))))

	ctx, cancel := a.callContext()
	defer cancel()
	return studio.Plan(ctx, text)
}

func writePlan(cmd *cobra.Command, plan generator.Plan, outPath string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if outPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// loadPlan 读取（可能被手工编辑过的）方案文件，容忍外层多余文本。
func loadPlan(path string) (generator.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generator.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return generator.ParsePlan(string(data))
}
