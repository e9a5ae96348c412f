// Package cmd 定义命令行入口：plan / generate / check / run / serve。
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ui_mockups/config"
	"ui_mockups/logger"
)

// app 在 PersistentPreRunE 中初始化，供各子命令使用。
type app struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ui-mockups",
		Short:         "Turn a requirements document into UI mockup images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config/config.json", "path to config.json (optional; env vars override it)")

	root.AddCommand(
		newPlanCmd(a),
		newGenerateCmd(a),
		newCheckCmd(a),
		newRunCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	if !cfg.HasCredential() {
		log.Warn("OPENAI_API_KEY not set; live planning, image generation and adherence checks are unavailable",
			zap.String("provider", cfg.Provider), zap.Bool("mock_mode", cfg.MockMode))
	}
	return nil
}

// callContext bounds one command's model calls and stops on Ctrl-C.
func (a *app) callContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout.Duration())
	return ctx, func() {
		cancel()
		stop()
	}
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
