package generator

import (
	"math"
	"time"

	"btc-etf-flows/internal/types"
)

// Generate produces a synthetic flow series covering the trading days in the
// `days` calendar days ending at end. It is a pure function of (end, days):
// every value derives from seededRand, so two calls with the same inputs are
// byte-identical.
func Generate(end time.Time, days int) types.Series {
	end = end.UTC().Truncate(24 * time.Hour)

	recs := make([]types.DayRecord, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		// 1-based walk index; the per-fund seed is its product with the
		// 1-based fund position.
		dayIndex := days - i

		var flows [types.NumFunds]float64
		var sum float64
		for k, f := range types.Funds {
			span := f.FlowMax - f.FlowMin
			v := types.Round1(f.FlowMin + seededRand(float64(dayIndex*(k+1)))*span)
			flows[k] = v
			sum += v
		}

		recs = append(recs, types.DayRecord{
			Date:  d.Format("2006-01-02"),
			Flows: flows,
			Total: types.Round1(sum),
		})
	}
	return types.Canonicalize(recs)
}

// seededRand maps an integer seed to [0, 1) via frac(sin(seed) * 10000).
// The formula is a contract, not an implementation detail: the walk index and
// fund index must agree on it for the series to be reproducible bit-for-bit.
func seededRand(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
