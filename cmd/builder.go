package cmd

import (
	"go.uber.org/zap"

	"ui_mockups/config"
	"ui_mockups/generator"
)

// buildStudio 按 provider 组装规划、生图和检查客户端。
// 没有 API key 时对应能力为空，调用时返回 ErrMissingCredential，而不是启动失败。
func buildStudio(cfg config.Config, log *zap.Logger) (*generator.Studio, error) {
	var (
		planner generator.LLMClient
		images  generator.ImageClient
		vision  generator.VisionClient
	)

	if cfg.HasCredential() {
		// deepseek 同样走 OpenAI 兼容接口，base_url 已在配置校验中检查。
		client, err := generator.NewOpenAILLMFromConfig(cfg.LLMSettings(), log)
		if err != nil {
			return nil, err
		}
		planner, images, vision = client, client, client
	}
	if cfg.Provider == config.ProviderMock {
		planner = generator.MockLLM{}
	}

	var agent *generator.Agent
	if planner != nil {
		a, err := generator.NewAgent(planner, log)
		if err != nil {
			return nil, err
		}
		agent = a
	}

	placeholder := generator.NewHTTPPlaceholder(cfg.PlaceholderURL, cfg.PlaceholderTimeout.Duration(), log)
	gen := generator.NewImageGenerator(images, placeholder, cfg.MockMode, cfg.ImageRateInterval.Duration(), log)
	checker := generator.NewAdherenceChecker(vision, log)

	log.Info("Pipeline ready",
		zap.String("provider", cfg.Provider),
		zap.Bool("can_plan", agent != nil),
		zap.Bool("offline_images", cfg.MockMode),
		zap.String("planner_model", cfg.PlannerModel),
		zap.String("image_model", cfg.ImageModel))
	return generator.NewStudio(agent, gen, checker, log)
}
