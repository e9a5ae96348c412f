package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// OpenAILLM implements LLMClient, ImageClient and VisionClient using the official openai-go SDK.
type OpenAILLM struct {
	client       openai.Client
	plannerModel string
	visionModel  string
	imageModel   string
	countTokens  bool
	logger       *zap.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

func NewOpenAILLMFromConfig(cfg *LLMSettings, logger *zap.Logger) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.PlannerModel == "" || cfg.VisionModel == "" || cfg.ImageModel == "" {
		return nil, errors.New("planner, vision and image models are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// Every call is attempted exactly once.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{
		client:       openai.NewClient(opts...),
		plannerModel: cfg.PlannerModel,
		visionModel:  cfg.VisionModel,
		imageModel:   cfg.ImageModel,
		countTokens:  cfg.CountTokens,
		logger:       logger,
	}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	log := o.logger.With(zap.String("operation", opPlan), zap.String("model", o.plannerModel))
	o.observePromptTokens(prompt)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
		openai.UserMessage(prompt.User),
	}

	log.Info("Sending completion request",
		zap.Int("system_bytes", len(prompt.System)),
		zap.Int("user_bytes", len(prompt.User)))
	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.plannerModel),
		Messages:    msgs,
		Temperature: openai.Float(prompt.Temperature),
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("openai: empty choices")
	}
	observeModelCall(opPlan, o.plannerModel, start, err)
	if err != nil {
		log.Error("Completion request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return "", err
	}

	text := resp.Choices[0].Message.Content
	log.Info("Completion received",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_chars", len(text)),
		zap.Int64("total_tokens", resp.Usage.TotalTokens))
	return text, nil
}

func (o *OpenAILLM) GenerateImages(ctx context.Context, req ImageRequest) ([]string, error) {
	log := o.logger.With(zap.String("operation", opImage), zap.String("model", o.imageModel))

	params := openai.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  openai.ImageModel(o.imageModel),
		N:      openai.Int(int64(req.N)),
		Size:   openai.ImageGenerateParamsSize(req.Size),
	}
	// gpt-image-* always answers with base64 and rejects response_format.
	if strings.HasPrefix(o.imageModel, "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	log.Info("Sending image request", zap.Int("n", req.N), zap.String("size", req.Size))
	start := time.Now()
	resp, err := o.client.Images.Generate(ctx, params)
	observeModelCall(opImage, o.imageModel, start, err)
	if err != nil {
		log.Error("Image request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, err
	}

	images := make([]string, 0, len(resp.Data))
	for i, item := range resp.Data {
		if item.B64JSON == "" {
			return nil, fmt.Errorf("openai: image %d has no b64_json payload", i+1)
		}
		images = append(images, item.B64JSON)
	}
	log.Info("Images received", zap.Duration("duration", time.Since(start)), zap.Int("count", len(images)))
	return images, nil
}

func (o *OpenAILLM) Inspect(ctx context.Context, req VisionRequest) (string, error) {
	log := o.logger.With(zap.String("operation", opAdherence), zap.String("model", o.visionModel))

	content := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Text),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/png;base64," + req.ImageBase64,
		}),
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.visionModel),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(content)},
		Temperature: openai.Float(req.Temperature),
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("openai: empty choices")
	}
	observeModelCall(opAdherence, o.visionModel, start, err)
	if err != nil {
		log.Warn("Vision request failed", zap.Error(err))
		return "", err
	}
	log.Info("Vision report received", zap.Duration("duration", time.Since(start)))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// observePromptTokens 估算规划提示词的 token 数，分词器不可用时直接跳过。
func (o *OpenAILLM) observePromptTokens(prompt Prompt) {
	if !o.countTokens {
		return
	}
	o.encOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel(o.plannerModel)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			o.logger.Warn("Tokenizer unavailable, skipping prompt token metrics", zap.Error(err))
			return
		}
		o.enc = enc
	})
	if o.enc == nil {
		return
	}
	n := len(o.enc.Encode(prompt.System, nil, nil)) + len(o.enc.Encode(prompt.User, nil, nil))
	plannerPromptTokens.Observe(float64(n))
}

var (
	_ LLMClient    = (*OpenAILLM)(nil)
	_ ImageClient  = (*OpenAILLM)(nil)
	_ VisionClient = (*OpenAILLM)(nil)
)
