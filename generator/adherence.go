package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NoMustItemsMessage is returned when a screen has nothing to verify.
const NoMustItemsMessage = "No MUST items provided."

const adherenceTemperature = 0.2

// AdherenceChecker asks a vision model whether a mockup shows every must item.
// It never returns an error: failures become an advisory message.
type AdherenceChecker struct {
	vision VisionClient
	logger *zap.Logger
}

// NewAdherenceChecker accepts a nil client; checks then report the missing credential.
func NewAdherenceChecker(vision VisionClient, logger *zap.Logger) *AdherenceChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdherenceChecker{vision: vision, logger: logger}
}

// Check 返回模型的原始结论；must 为空时不调用模型。
func (c *AdherenceChecker) Check(ctx context.Context, imageB64 string, must []string) string {
	items := nonEmpty(must)
	if len(items) == 0 {
		return NoMustItemsMessage
	}
	if c.vision == nil {
		return skipped(ErrMissingCredential)
	}

	report, err := c.vision.Inspect(ctx, VisionRequest{
		Text:        BuildAdherencePrompt(items),
		ImageBase64: imageB64,
		Temperature: adherenceTemperature,
	})
	if err != nil {
		c.logger.Warn("Adherence check skipped", zap.Error(err))
		return skipped(err)
	}
	return report
}

func skipped(err error) string {
	return fmt.Sprintf("(Adherence check skipped: %v)", err)
}
