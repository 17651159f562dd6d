package interfaces

import (
	"context"

	"btc-etf-flows/internal/types"
)

// Provider produces a complete flow dataset. It has no failure mode: when the
// live source is unavailable the result is wholly synthetic with Live=false,
// never an error and never a blend of live and synthetic rows.
type Provider interface {
	Run(ctx context.Context) types.PipelineResult
}
