package pipelineobs

import (
	"context"
	"time"

	"btc-etf-flows/internal/interfaces"
	"btc-etf-flows/internal/logger"
	"btc-etf-flows/internal/metrics"
	"btc-etf-flows/internal/trace"
	"btc-etf-flows/internal/types"
)

type observableProvider struct {
	provider interfaces.Provider
	recorder *metrics.Recorder
}

var _ interfaces.Provider = (*observableProvider)(nil)

func Wrap(p interfaces.Provider, rec *metrics.Recorder) interfaces.Provider {
	return &observableProvider{
		provider: p,
		recorder: rec,
	}
}

func (op *observableProvider) Run(ctx context.Context) types.PipelineResult {
	ctx, span := trace.StartSpan(ctx, "pipeline.Run")
	defer span.End()

	start := time.Now()

	result := op.provider.Run(ctx)
	elapsed := time.Since(start)

	if op.recorder != nil {
		op.recorder.RecordRun(result.Live, elapsed.Seconds(), len(result.Series))
	}

	logger.Info(ctx, "Pipeline run completed",
		"live", result.Live,
		"source", result.SourceLabel,
		"records", len(result.Series),
		"duration_ms", elapsed.Milliseconds(),
	)

	return result
}
