package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var planPath, screenName, imagePath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask a vision model whether an image shows a screen's must items",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			screen, ok := plan.ScreenByName(screenName)
			if !ok {
				return fmt.Errorf("screen %q not found in %s", screenName, planPath)
			}
			img, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			studio, err := buildStudio(a.cfg, a.log)
			if err != nil {
				return err
			}

			ctx, cancel := a.callContext()
			defer cancel()
			report := studio.Check(ctx, base64.StdEncoding.EncodeToString(img), screen)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report)
			return err
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "plan JSON")
	cmd.Flags().StringVar(&screenName, "screen", "", "screen name in the plan")
	cmd.Flags().StringVar(&imagePath, "image", "", "PNG file to inspect")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("screen")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}
