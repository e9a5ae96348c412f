package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultPlaceholderURL serves the fixed offline-mode image.
const DefaultPlaceholderURL = "https://placehold.co/1024x1024?text=Mockup+Preview"

const (
	defaultPlaceholderTimeout = 30 * time.Second
	placeholderCacheTTL       = 10 * time.Minute
	placeholderCacheCleanup   = 30 * time.Minute
)

// PlaceholderSource supplies the offline-mode image as base64.
type PlaceholderSource interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPPlaceholder downloads a fixed placeholder image with a plain GET.
// The encoded bytes are kept for a short while so repeated offline runs stay fast.
type HTTPPlaceholder struct {
	url    string
	client *http.Client
	cache  *cache.Cache
	logger *zap.Logger
}

func NewHTTPPlaceholder(url string, timeout time.Duration, logger *zap.Logger) *HTTPPlaceholder {
	if url == "" {
		url = DefaultPlaceholderURL
	}
	if timeout <= 0 {
		timeout = defaultPlaceholderTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPPlaceholder{
		url:    url,
		client: &http.Client{Timeout: timeout},
		cache:  cache.New(placeholderCacheTTL, placeholderCacheCleanup),
		logger: logger,
	}
}

func (p *HTTPPlaceholder) Fetch(ctx context.Context) (string, error) {
	if cached, ok := p.cache.Get(p.url); ok {
		if b64, ok := cached.(string); ok {
			return b64, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create placeholder request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("placeholder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read placeholder body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("placeholder host returned status %d", resp.StatusCode)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("placeholder host returned empty body")
	}

	b64 := base64.StdEncoding.EncodeToString(body)
	p.cache.SetDefault(p.url, b64)
	p.logger.Debug("Placeholder fetched", zap.String("url", p.url), zap.Int("size_bytes", len(body)))
	return b64, nil
}
