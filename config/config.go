// Package config 负责加载运行配置：JSON 文件（可选）+ 环境变量 + .env。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"ui_mockups/generator"
	"ui_mockups/logger"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
)

// Config holds every process-level setting. Environment variables override the JSON file.
type Config struct {
	APIKey   string `json:"api_key" env:"OPENAI_API_KEY"`
	BaseURL  string `json:"base_url" env:"OPENAI_BASE_URL"`
	Provider string `json:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	MockMode bool   `json:"mock_mode" env:"MOCK_MODE" env-default:"false"`

	PlannerModel string `json:"planner_model" env:"PLANNER_MODEL" env-default:"gpt-4o-mini"`
	VisionModel  string `json:"vision_model" env:"VISION_MODEL" env-default:"gpt-4o-mini"`
	ImageModel   string `json:"image_model" env:"IMAGE_MODEL" env-default:"gpt-image-1"`
	CountTokens  bool   `json:"count_tokens" env:"COUNT_PROMPT_TOKENS" env-default:"false"`

	PlaceholderURL     string   `json:"placeholder_url" env:"PLACEHOLDER_URL" env-default:"https://placehold.co/1024x1024?text=Mockup+Preview"`
	PlaceholderTimeout Duration `json:"placeholder_timeout" env:"PLACEHOLDER_TIMEOUT" env-default:"30s"`
	RequestTimeout     Duration `json:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"5m"`
	ImageRateInterval  Duration `json:"image_rate_interval" env:"IMAGE_RATE_INTERVAL" env-default:"0s"`

	ServerAddr         string   `json:"server_addr" env:"SERVER_ADDR" env-default:":8080"`
	SessionTTL         Duration `json:"session_ttl" env:"SESSION_TTL" env-default:"2h"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	LogLevel    string `json:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogEncoding string `json:"log_encoding" env:"LOG_ENCODING" env-default:"console"`
	LogOutput   string `json:"log_output" env:"LOG_OUTPUT"`
}

// Load 先尝试加载 .env（不存在则忽略），path 指向存在的文件时读取该文件，否则只读环境变量。
// 缺少 API key 不算加载错误，由调用方在规划/生成时报告。
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path != "" && fileExists(path) {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be fixed later at call time.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderMock:
	case ProviderDeepSeek:
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url。
		if c.BaseURL == "" {
			return errors.New("llm provider deepseek requires OPENAI_BASE_URL (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %q not supported", c.Provider)
	}
	if c.PlannerModel == "" || c.VisionModel == "" || c.ImageModel == "" {
		return errors.New("planner, vision and image models must not be empty")
	}
	return nil
}

// HasCredential reports whether live model calls can be made.
func (c Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) LLMSettings() *generator.LLMSettings {
	return &generator.LLMSettings{
		Provider:     c.Provider,
		APIKey:       strings.TrimSpace(c.APIKey),
		BaseURL:      c.BaseURL,
		PlannerModel: c.PlannerModel,
		VisionModel:  c.VisionModel,
		ImageModel:   c.ImageModel,
		CountTokens:  c.CountTokens,
	}
}

func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Encoding: c.LogEncoding, OutputPath: c.LogOutput}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
