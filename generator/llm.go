package generator

import "context"

// LLMClient 抽象文本补全模型，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ImageRequest is one call to the image-generation capability.
type ImageRequest struct {
	Prompt string
	N      int
	Size   string
}

// ImageClient returns base64-encoded images in response order.
type ImageClient interface {
	GenerateImages(ctx context.Context, req ImageRequest) ([]string, error)
}

// VisionRequest sends one image with an instruction to a vision-capable chat model.
type VisionRequest struct {
	Text        string
	ImageBase64 string
	Temperature float64
}

// VisionClient 检查图片内容并返回自由文本结论。
type VisionClient interface {
	Inspect(ctx context.Context, req VisionRequest) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider     string
	APIKey       string
	BaseURL      string
	PlannerModel string
	VisionModel  string
	ImageModel   string
	// CountTokens enables tokenizer-based prompt size metrics.
	CountTokens bool
}
