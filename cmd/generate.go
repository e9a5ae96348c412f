package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ui_mockups/generator"
	"ui_mockups/publisher"
)

type generateFlags struct {
	platform   string
	count      int
	size       string
	outDir     string
	bundlePath string
	reportPath string
	check      bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	d := generator.DefaultGenerateOptions()
	cmd.Flags().StringVar(&f.platform, "platform", d.Platform, fmt.Sprintf("target platform %v", generator.Platforms))
	cmd.Flags().IntVar(&f.count, "count", d.NPerScreen, fmt.Sprintf("images per screen (%d..%d)", generator.MinImagesPerScreen, generator.MaxImagesPerScreen))
	cmd.Flags().StringVar(&f.size, "size", d.Size, fmt.Sprintf("image size %v", generator.ImageSizes))
	cmd.Flags().StringVar(&f.outDir, "out", "", "directory for PNG files")
	cmd.Flags().StringVar(&f.bundlePath, "bundle", "", "write the plugin bundle JSON here")
	cmd.Flags().StringVar(&f.reportPath, "report", "", "write a review report (.md or .html)")
	cmd.Flags().BoolVar(&f.check, "check", false, "run the adherence check on every mockup")
}

func (f *generateFlags) options() (generator.GenerateOptions, error) {
	opts := generator.GenerateOptions{Platform: f.platform, NPerScreen: f.count, Size: f.size}.WithDefaults()
	return opts, opts.Validate()
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		planPath string
		flags    generateFlags
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate mockups for every screen of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			studio, err := buildStudio(a.cfg, a.log)
			if err != nil {
				return err
			}
			return a.generateAndPublish(cmd, studio, plan, opts, flags)
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "plan JSON produced by the plan command")
	_ = cmd.MarkFlagRequired("plan")
	flags.register(cmd)
	return cmd
}

// generateAndPublish 生成图片并写出所选产物；未指定任何输出时把 bundle 打印到 stdout。
func (a *app) generateAndPublish(cmd *cobra.Command, studio *generator.Studio, plan generator.Plan, opts generator.GenerateOptions, flags generateFlags) error {
	ctx, cancel := a.callContext()
	defer cancel()

	items, err := studio.Generate(ctx, plan, opts)
	if err != nil {
		return err
	}
	a.log.Info("Mockups generated", zap.Int("screens", len(plan.Screens)), zap.Int("images", len(items)))

	var checks map[string]string
	if flags.check {
		checks = runChecks(ctx, studio, items)
		for _, item := range items {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", item.Name, checks[item.Name])
		}
	}

	if flags.outDir == "" && flags.bundlePath == "" && flags.reportPath == "" {
		data, err := publisher.BuildBundle(items).JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	res, err := publisher.New(a.log).Publish(items, publisher.Options{
		ImageDir:   flags.outDir,
		BundlePath: flags.bundlePath,
		ReportPath: flags.reportPath,
		Title:      "UI Mockups",
		Checks:     checks,
	})
	if err != nil {
		return err
	}
	for _, p := range res.Images {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	if res.Bundle != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Bundle)
	}
	if res.Report != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Report)
	}
	return nil
}

func runChecks(ctx context.Context, studio *generator.Studio, items []generator.MockupItem) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[item.Name] = studio.Check(ctx, generator.PayloadFromDataURL(item.DataURL), item.ScreenSpec)
	}
	return out
}
