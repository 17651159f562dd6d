package pipeline

import (
	"context"
	"time"

	"btc-etf-flows/internal/generator"
	"btc-etf-flows/internal/interfaces"
	"btc-etf-flows/internal/logger"
	"btc-etf-flows/internal/types"
)

// Source labels surfaced to the front end next to the trust indicator.
const (
	LiveSourceLabel     = "farside.co.uk (live)"
	FallbackSourceLabel = "mock data (realistic simulation)"
)

// Pipeline composes fetch and parse, falling back to the synthetic generator
// when either fails. The result is always wholly live or wholly synthetic,
// never blended, so the Live flag is a sound trust signal.
type Pipeline struct {
	fetcher interfaces.Fetcher
	parser  interfaces.Parser
	genDays int
	now     func() time.Time
}

var _ interfaces.Provider = (*Pipeline)(nil)

// Option configures the pipeline
type Option func(*Pipeline)

// WithClock overrides the end-date source for the fallback generator.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func New(f interfaces.Fetcher, prs interfaces.Parser, generatorDays int, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: f,
		parser:  prs,
		genDays: generatorDays,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run never fails: both retrieval and insufficiency errors are recovered
// locally via fallback. A dashboard with clearly-labeled synthetic data beats
// an error page.
func (p *Pipeline) Run(ctx context.Context) types.PipelineResult {
	html, err := p.fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn(ctx, "Live fetch failed, serving synthetic data", "error", err)
		return p.fallback()
	}

	series, err := p.parser.Parse(html)
	if err != nil {
		logger.Warn(ctx, "Flow table parse failed, serving synthetic data", "error", err)
		return p.fallback()
	}

	return types.PipelineResult{
		Series:      types.Canonicalize(series),
		Live:        true,
		SourceLabel: LiveSourceLabel,
	}
}

func (p *Pipeline) fallback() types.PipelineResult {
	return types.PipelineResult{
		Series:      generator.Generate(p.now(), p.genDays),
		Live:        false,
		SourceLabel: FallbackSourceLabel,
	}
}
