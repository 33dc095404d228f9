// Package ensemble runs the enabled detectors for one destination, decides
// whether the escalation detector is consulted and folds every finding into a
// single scored verdict.
package ensemble

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"phishguard/internal/detector"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/metrics"
)

const instrumentationName = "phishguard/internal/ensemble"

// Default bounds of the preliminary score for which escalation is considered.
const (
	DefaultEscalationMin = 20
	DefaultEscalationMax = 80
)

// Options are the per-analysis switches supplied by the caller.
type Options struct {
	// Enabled maps detector keys to on/off. Missing keys are on.
	Enabled map[string]bool
	// EnableEscalation permits the escalation step.
	EnableEscalation bool
	// Carry is an escalation finding from an earlier analysis of the same
	// destination. When set it replaces the escalation step.
	Carry *domain.Finding
}

// Availability is implemented by escalation detectors that can be configured
// without a usable backend.
type Availability interface {
	Available() bool
}

// Ensemble is safe for concurrent use.
type Ensemble struct {
	registry      *detector.Registry
	escalation    detector.Detector
	escalationMin int
	escalationMax int
	now           func() time.Time

	tracer   trace.Tracer
	duration metric.Float64Histogram
}

// Option configures an Ensemble.
type Option func(*Ensemble)

// WithEscalation sets the detector consulted for ambiguous scores.
func WithEscalation(d detector.Detector) Option {
	return func(e *Ensemble) { e.escalation = d }
}

// WithEscalationBand replaces the default [20,80] band. Invalid bands are ignored.
func WithEscalationBand(lo, hi int) Option {
	return func(e *Ensemble) {
		if lo >= 0 && hi <= 100 && lo <= hi {
			e.escalationMin, e.escalationMax = lo, hi
		}
	}
}

// WithClock replaces time.Now for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Ensemble) { e.now = now }
}

// New creates an ensemble over the detectors in registry.
func New(registry *detector.Registry, opts ...Option) *Ensemble {
	e := &Ensemble{
		registry:      registry,
		escalationMin: DefaultEscalationMin,
		escalationMax: DefaultEscalationMax,
		now:           time.Now,
		tracer:        otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(e)
	}

	histogram, err := otel.Meter(instrumentationName).Float64Histogram(
		"phishguard.detector.duration",
		metric.WithDescription("Detector latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...),
	)
	if err != nil {
		logger.Get(context.Background()).Warn("could not create detector duration histogram", zap.Error(err))
	}
	e.duration = histogram

	return e
}

// Escalation returns the configured escalation detector, if any.
func (e *Ensemble) Escalation() detector.Detector {
	return e.escalation
}

// Analyze runs the enabled detectors concurrently and aggregates their
// findings. It never fails: detector errors become zero-confidence findings.
func (e *Ensemble) Analyze(ctx context.Context, dc detector.Context, opts Options) domain.AggregatedResult {
	ctx, span := e.tracer.Start(ctx, "ensemble.Analyze", trace.WithAttributes(
		attribute.String("hostname", dc.Hostname),
		attribute.String("protocol", dc.Protocol),
	))
	defer span.End()

	detectors := e.registry.Enabled(opts.Enabled)
	findings := make([]domain.Finding, len(detectors))

	// each goroutine owns one slot of findings and never returns an error
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range detectors {
		g.Go(func() error {
			findings[i] = e.run(gctx, d, dc)
			return nil
		})
	}
	_ = g.Wait()

	preliminary := Aggregate(findings)
	outcome := e.escalate(ctx, preliminary, opts)

	switch outcome {
	case domain.EscalationInvoked:
		escalated := dc
		escalated.Prior = append([]domain.Finding(nil), findings...)
		findings = append(findings, e.run(ctx, e.escalation, escalated))
	case domain.EscalationCarried:
		findings = append(findings, *opts.Carry)
	}

	result := e.result(dc.Hostname, findings, outcome)

	span.SetAttributes(
		attribute.Int("risk.preliminary", preliminary),
		attribute.Int("risk.total", result.TotalRisk),
		attribute.String("risk.level", string(result.RiskLevel)),
		attribute.String("escalation", string(outcome)),
	)
	span.SetStatus(codes.Ok, "")

	metrics.Verdicts.WithLabelValues(string(result.RiskLevel)).Inc()
	metrics.Escalations.WithLabelValues(string(outcome)).Inc()

	return result
}

// escalate decides the escalation outcome for a preliminary score.
func (e *Ensemble) escalate(ctx context.Context, preliminary int, opts Options) domain.EscalationOutcome {
	var outcome domain.EscalationOutcome
	switch {
	case opts.Carry != nil:
		outcome = domain.EscalationCarried
	case !opts.EnableEscalation || !detector.IsEnabled(opts.Enabled, detector.KeyLLM):
		outcome = domain.EscalationDisabled
	case !e.available():
		outcome = domain.EscalationUnavailable
	case preliminary < e.escalationMin || preliminary > e.escalationMax:
		outcome = domain.EscalationOutOfBand
	default:
		outcome = domain.EscalationInvoked
	}

	logger.Debug(ctx, "escalation decided",
		zap.Int("preliminary", preliminary),
		zap.String("outcome", string(outcome)),
	)

	return outcome
}

func (e *Ensemble) available() bool {
	if e.escalation == nil {
		return false
	}
	if a, ok := e.escalation.(Availability); ok {
		return a.Available()
	}

	return true
}

// run executes one detector behind the Safe boundary and records its latency.
func (e *Ensemble) run(ctx context.Context, d detector.Detector, dc detector.Context) domain.Finding {
	ctx, span := e.tracer.Start(ctx, "detector."+d.Key())
	defer span.End()

	start := time.Now()
	f := detector.Safe(ctx, d, dc)
	elapsed := time.Since(start).Seconds()

	metrics.DetectorDuration.WithLabelValues(d.Key()).Observe(elapsed)
	if e.duration != nil {
		e.duration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("detector", d.Key())))
	}
	if _, failed := f.Details["error"]; failed {
		metrics.DetectorFailures.WithLabelValues(d.Key()).Inc()
		span.SetStatus(codes.Error, f.Reason)
	}
	span.SetAttributes(attribute.Int("risk", f.Risk), attribute.Float64("confidence", f.Confidence))

	return f
}

func (e *Ensemble) result(hostname string, findings []domain.Finding, outcome domain.EscalationOutcome) domain.AggregatedResult {
	total := Aggregate(findings)

	return domain.AggregatedResult{
		Hostname:   hostname,
		TotalRisk:  total,
		RiskLevel:  Level(total),
		Findings:   findings,
		AnalyzedAt: e.now(),
		Escalation: outcome,
	}
}
