package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		docPath     string
		planOutPath string
		flags       generateFlags
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan a document and generate its mockups in one go",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			studio, err := buildStudio(a.cfg, a.log)
			if err != nil {
				return err
			}
			plan, err := a.planDocument(studio, docPath)
			if err != nil {
				return err
			}
			if planOutPath != "" {
				if err := writePlan(cmd, plan, planOutPath); err != nil {
					return err
				}
			}
			return a.generateAndPublish(cmd, studio, plan, opts, flags)
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "requirements document (.txt, .md, .docx, .pdf)")
	cmd.Flags().StringVar(&planOutPath, "plan-out", "", "also save the extracted plan JSON here")
	_ = cmd.MarkFlagRequired("doc")
	flags.register(cmd)
	return cmd
}
