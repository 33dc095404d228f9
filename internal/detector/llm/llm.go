// Package llm is the escalation detector: it asks a hosted language model for
// a verdict on destinations the other detectors could not settle.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	llmapi "phishguard/pkg/llm"
)

const (
	// Weight is the aggregation weight of the escalation detector.
	Weight = 0.3
	// DefaultRatePerMinute is the number of model calls allowed per minute.
	DefaultRatePerMinute = 5

	// GateMin and GateMax bound the average prior risk for which the model is
	// consulted. GateDefault stands in when no prior finding is confident.
	GateMin     = 30.0
	GateMax     = 80.0
	GateDefault = 50.0
)

// Detector consults an llm.Client.
type Detector struct {
	client  llmapi.Client
	corpus  *corpus.Store
	limiter *rate.Limiter
	now     func() time.Time
}

var _ detector.Detector = (*Detector)(nil)

// Option configures a Detector.
type Option func(*Detector)

// WithRatePerMinute replaces the default call budget.
func WithRatePerMinute(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// New creates the detector. A nil client leaves it unconfigured; store is
// optional and only feeds the similar-domain context.
func New(client llmapi.Client, store *corpus.Store, opts ...Option) *Detector {
	d := &Detector{client: client, corpus: store, now: time.Now}
	WithRatePerMinute(DefaultRatePerMinute)(d)
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Detector) Key() string     { return detector.KeyLLM }
func (d *Detector) Name() string    { return "LLMAnalyzer" }
func (d *Detector) Weight() float64 { return Weight }

// Available reports whether a client is configured.
func (d *Detector) Available() bool { return d.client != nil }

// AverageRisk is the mean risk of the confident findings, GateDefault when
// there are none.
func AverageRisk(findings []domain.Finding) float64 {
	var (
		sum float64
		n   int
	)
	for _, f := range findings {
		if !f.Evaluated() {
			continue
		}
		sum += float64(f.Risk)
		n++
	}
	if n == 0 {
		return GateDefault
	}

	return sum / float64(n)
}

// Analyze implements detector.Detector.
func (d *Detector) Analyze(ctx context.Context, dc detector.Context) (domain.Finding, error) {
	log := logger.Get(ctx).With(zap.String("detector", d.Key()), zap.String("hostname", dc.Hostname))

	avg := AverageRisk(dc.Prior)
	switch {
	case avg < GateMin:
		log.Debug("skipping llm analysis, prior risk too low", zap.Float64("avgRisk", avg))

		return detector.Skipped("other detectors consider the site safe",
			domain.Details{"skipped": true, "reason": "low_risk", "avgRisk": avg}), nil
	case avg > GateMax:
		log.Debug("skipping llm analysis, prior risk too high", zap.Float64("avgRisk", avg))

		return detector.Skipped("other detectors already consider the site dangerous",
			domain.Details{"skipped": true, "reason": "high_risk", "avgRisk": avg}), nil
	}

	if d.client == nil {
		return detector.Skipped("llm api is not configured",
			domain.Details{"skipped": true, "reason": "no_api_client"}), nil
	}

	if !d.limiter.AllowN(d.now(), 1) {
		log.Warn("llm rate limit exceeded")

		return detector.Skipped("llm call limit reached, try again later",
			domain.Details{"skipped": true, "reason": "rate_limited"}), nil
	}

	var snap *corpus.Snapshot
	if d.corpus != nil {
		s, err := d.corpus.Get(ctx)
		if err != nil {
			log.Debug("corpus unavailable for llm context", zap.Error(err))
		}
		snap = s
	}
	text := ""
	if dc.Page != nil {
		text = dc.Page.TextContent
	}
	prompt := BuildPrompt(dc, BuildContext(snap, dc.Hostname, dc.URL, text))
	if logger.Enabled(ctx, zapcore.DebugLevel) {
		log.Debug("llm prompt", zap.Int("bytes", len(prompt)))
	}

	reply, err := d.client.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return domain.Finding{}, fmt.Errorf("could not complete llm analysis: %w", err)
	}

	resp := Parse(reply)
	log.Debug("llm verdict", zap.String("verdict", string(resp.Verdict)), zap.Int("risk", resp.RiskScore))

	return domain.Finding{
		Risk:       resp.RiskScore,
		Confidence: resp.Confidence,
		Reason:     resp.Recommendation,
		Details: domain.Details{
			"llmVerdict":      string(resp.Verdict),
			"explanation":     strings.Join(resp.Reasons, ". "),
			"suggestedAction": suggestedAction(resp.Verdict),
			"provider":        d.client.Provider(),
			"avgPriorRisk":    avg,
		},
	}, nil
}
