package types

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"time"
)

// DayRecord is one trading day of net flows, in USD millions.
// Flows is indexed by the position of each fund in Funds; Total is always
// re-derived from Flows, never supplied independently.
type DayRecord struct {
	Date  string
	Flows [NumFunds]float64
	Total float64
}

// Flow returns the flow for a ticker, or 0 if the ticker is unknown.
func (r DayRecord) Flow(ticker string) float64 {
	for i, f := range Funds {
		if f.Ticker == ticker {
			return r.Flows[i]
		}
	}
	return 0
}

// MarshalJSON emits the flat wire shape the dashboard consumes:
// {"date": ..., "IBIT": ..., ..., "total": ...} with funds in Funds order.
func (r DayRecord) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"date":`)
	b.WriteString(strconv.Quote(r.Date))
	for i, f := range Funds {
		b.WriteByte(',')
		b.WriteString(strconv.Quote(f.Ticker))
		b.WriteByte(':')
		b.Write(strconv.AppendFloat(nil, r.Flows[i], 'f', -1, 64))
	}
	b.WriteString(`,"total":`)
	b.Write(strconv.AppendFloat(nil, r.Total, 'f', -1, 64))
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Series is an ordered sequence of DayRecord. The canonical internal order is
// ascending by date with no duplicate dates; Canonicalize establishes it.
type Series []DayRecord

// Canonicalize deduplicates records by date (first occurrence wins) and sorts
// ascending by date. ISO dates sort lexically, so a string sort is enough.
func Canonicalize(recs []DayRecord) Series {
	seen := make(map[string]struct{}, len(recs))
	out := make(Series, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Tail returns the last n records (the whole series if it is shorter).
func (s Series) Tail(n int) Series {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// PipelineResult is the value handed to the API layer: a canonical series plus
// provenance. Live is true only when the series came from the remote source.
// Constructed once per pipeline run and never mutated afterwards.
type PipelineResult struct {
	Series      Series
	Live        bool
	SourceLabel string
}

// Round1 rounds to one decimal place, half away from zero. All published flow
// values carry exactly one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseDay parses a canonical YYYY-MM-DD date in UTC.
func ParseDay(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}
