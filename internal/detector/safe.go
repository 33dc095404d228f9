package detector

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

// Safe runs d and always returns a finding. Errors and panics become a
// zero-confidence finding carrying the error text; risk and confidence of a
// successful finding are clamped to their ranges.
func Safe(ctx context.Context, d Detector, dc Context) (finding domain.Finding) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "detector panicked", zap.String("detector", d.Key()), zap.Any("panic", p))
			finding = Failed(d, fmt.Errorf("detector panicked: %v", p))
		}
	}()

	f, err := d.Analyze(ctx, dc)
	if err != nil {
		logger.Warn(ctx, "detector failed", zap.String("detector", d.Key()), zap.Error(err))

		return Failed(d, err)
	}

	f.Detector = d.Key()
	f.Name = d.Name()
	f.Weight = d.Weight()
	f.Risk = min(100, max(0, f.Risk))
	if math.IsNaN(f.Confidence) {
		f.Confidence = 0
	}
	f.Confidence = min(1, max(0, f.Confidence))

	return f
}

// Failed builds the zero-confidence finding reported for a detector that
// could not evaluate.
func Failed(d Detector, err error) domain.Finding {
	return domain.Finding{
		Detector:   d.Key(),
		Name:       d.Name(),
		Weight:     d.Weight(),
		Risk:       0,
		Confidence: 0,
		Reason:     err.Error(),
		Details:    domain.Details{"error": err.Error()},
	}
}

// Skipped builds a zero-confidence finding for a detector that had nothing to
// evaluate.
func Skipped(reason string, details domain.Details) domain.Finding {
	return domain.Finding{Confidence: 0, Reason: reason, Details: details}
}
