package ensemble

import (
	"math"

	"phishguard/pkg/domain"
)

const (
	// OverrideRisk and OverrideConfidence select findings strong enough to
	// floor the total at OverrideFloor on their own.
	OverrideRisk       = 90
	OverrideConfidence = 0.5
	OverrideFloor      = 70

	// DangerThreshold and WarningThreshold split the total into risk levels.
	DangerThreshold  = 70
	WarningThreshold = 40
)

// Aggregate folds findings into a total risk in [0,100].
//
// Findings with zero confidence are ignored. The rest are averaged by
// weight*confidence, and any finding with risk >= OverrideRisk and confidence
// >= OverrideConfidence floors the result at OverrideFloor.
func Aggregate(findings []domain.Finding) int {
	var (
		num, den float64
		override bool
		counted  int
	)
	for _, f := range findings {
		if !f.Evaluated() {
			continue
		}
		counted++
		w := f.Weight * f.Confidence
		num += float64(f.Risk) * w
		den += w
		if f.Risk >= OverrideRisk && f.Confidence >= OverrideConfidence {
			override = true
		}
	}
	if counted == 0 {
		return 0
	}

	total := 0
	if den > 0 {
		total = int(math.Round(num / den))
	}
	if override {
		total = max(total, OverrideFloor)
	}

	return min(100, max(0, total))
}

// Level classifies a total risk.
func Level(total int) domain.RiskLevel {
	switch {
	case total >= DangerThreshold:
		return domain.RiskLevelDanger
	case total >= WarningThreshold:
		return domain.RiskLevelWarning
	default:
		return domain.RiskLevelSafe
	}
}
