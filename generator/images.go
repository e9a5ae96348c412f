package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ImageGenerator 按 Plan 中的屏幕顺序逐个生成图片。
// 任一屏幕失败则整批失败，不返回部分结果。
type ImageGenerator struct {
	images      ImageClient
	placeholder PlaceholderSource
	offline     bool
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewImageGenerator wires the live client and the offline placeholder source.
// images may be nil when no credential is configured; live runs then fail with ErrMissingCredential.
// interval paces live calls; zero means no pacing.
func NewImageGenerator(images ImageClient, placeholder PlaceholderSource, offline bool, interval time.Duration, logger *zap.Logger) *ImageGenerator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageGenerator{
		images:      images,
		placeholder: placeholder,
		offline:     offline,
		limiter:     limiter,
		logger:      logger,
	}
}

// Offline reports whether placeholder images are used instead of the image model.
func (g *ImageGenerator) Offline() bool { return g.offline }

// Generate 为每个屏幕构建一次 prompt，并在该屏幕的所有图片上复用。
func (g *ImageGenerator) Generate(ctx context.Context, plan Plan, opts GenerateOptions) ([]MockupResult, error) {
	n := opts.NPerScreen
	if n < 1 {
		n = 1
	}
	if !g.offline && g.images == nil {
		return nil, ErrMissingCredential
	}
	if g.offline && g.placeholder == nil {
		return nil, fmt.Errorf("%w: offline mode has no placeholder source", ErrGenerationFailed)
	}

	var out []MockupResult
	for i, screen := range plan.Screens {
		name := firstNonEmpty(screen.Name, DefaultScreenName)
		prompt := BuildImagePrompt(screen, plan.GlobalStyle, opts.Platform)
		log := g.logger.With(zap.String("screen", name), zap.Int("screen_index", i+1))

		if g.offline {
			b64, err := g.placeholder.Fetch(ctx)
			if err != nil {
				return nil, fmt.Errorf("%w: screen %q: %w", ErrGenerationFailed, name, err)
			}
			out = append(out, MockupResult{Screen: name, Index: 1, Prompt: prompt, Image: b64})
			imagesGeneratedTotal.WithLabelValues("offline").Inc()
			log.Info("Placeholder mockup attached")
			continue
		}

		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		images, err := g.images.GenerateImages(ctx, ImageRequest{Prompt: prompt, N: n, Size: opts.Size})
		if err != nil {
			if errors.Is(err, ErrMissingCredential) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: screen %q: %w", ErrGenerationFailed, name, err)
		}
		if len(images) != n {
			log.Warn("Image count differs from request", zap.Int("requested", n), zap.Int("received", len(images)))
		}
		for idx, b64 := range images {
			out = append(out, MockupResult{Screen: name, Index: idx + 1, Prompt: prompt, Image: b64})
		}
		imagesGeneratedTotal.WithLabelValues("live").Add(float64(len(images)))
		log.Info("Mockups generated", zap.Int("count", len(images)))
	}
	return out, nil
}

// BuildMockupItems 把生成结果与来源 Screen 关联。同名屏幕取 Plan 中第一个。
func BuildMockupItems(plan Plan, results []MockupResult) []MockupItem {
	items := make([]MockupItem, 0, len(results))
	for _, r := range results {
		screen, _ := plan.ScreenByName(r.Screen)
		items = append(items, MockupItem{
			Name:       MockupName(r),
			DataURL:    ToDataURL(r.Image),
			Prompt:     r.Prompt,
			Result:     r,
			ScreenSpec: screen,
		})
	}
	return items
}

// MockupName is "<screen>_<index>.png".
func MockupName(r MockupResult) string {
	return fmt.Sprintf("%s_%d.png", r.Screen, r.Index)
}

const dataURLPrefix = "data:image/png;base64,"

func ToDataURL(pngB64 string) string {
	return dataURLPrefix + pngB64
}

// PayloadFromDataURL strips everything up to the first comma.
func PayloadFromDataURL(dataURL string) string {
	if _, payload, ok := strings.Cut(dataURL, ","); ok {
		return payload
	}
	return dataURL
}
