package types

import (
	"bytes"
	"sort"
	"strconv"
)

// WeeklyBucket sums a series over one calendar week starting Monday.
type WeeklyBucket struct {
	WeekStart string  `json:"weekStart"`
	Total     float64 `json:"total"`
	Days      int     `json:"days"`
}

// MonthlyBucket sums a series over one calendar month, per fund and in total.
type MonthlyBucket struct {
	Month string
	Flows [NumFunds]float64
	Total float64
	Days  int
}

// MarshalJSON emits {"month": ..., "IBIT": ..., ..., "total": ..., "days": ...}
// so monthly rows mirror the daily wire shape.
func (b MonthlyBucket) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"month":`)
	buf.WriteString(strconv.Quote(b.Month))
	for i, f := range Funds {
		buf.WriteByte(',')
		buf.WriteString(strconv.Quote(f.Ticker))
		buf.WriteByte(':')
		buf.Write(strconv.AppendFloat(nil, b.Flows[i], 'f', -1, 64))
	}
	buf.WriteString(`,"total":`)
	buf.Write(strconv.AppendFloat(nil, b.Total, 'f', -1, 64))
	buf.WriteString(`,"days":`)
	buf.Write(strconv.AppendInt(nil, int64(b.Days), 10))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary holds the headline figures shown on the dashboard cards.
type Summary struct {
	LatestDate string  `json:"latestDate"`
	DayTotal   float64 `json:"dayTotal"`
	WeekTotal  float64 `json:"weekTotal"`
	MonthTotal float64 `json:"monthTotal"`
	NetTotal   float64 `json:"netTotal"`
	BestDate   string  `json:"bestDate"`
	BestTotal  float64 `json:"bestTotal"`
	WorstDate  string  `json:"worstDate"`
	WorstTotal float64 `json:"worstTotal"`
}

// AggregateWeekly groups a canonical series by week start (Monday), ascending.
func AggregateWeekly(s Series) []WeeklyBucket {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range s {
		d, err := ParseDay(r.Date)
		if err != nil {
			continue
		}
		start := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		key := start.Format("2006-01-02")
		totals[key] += r.Total
		counts[key]++
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]WeeklyBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, WeeklyBucket{WeekStart: k, Total: Round1(totals[k]), Days: counts[k]})
	}
	return out
}

// AggregateMonthly groups a canonical series by YYYY-MM, ascending.
func AggregateMonthly(s Series) []MonthlyBucket {
	buckets := make(map[string]*MonthlyBucket)
	for _, r := range s {
		if len(r.Date) < 7 {
			continue
		}
		key := r.Date[:7]
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{Month: key}
			buckets[key] = b
		}
		for i := range r.Flows {
			b.Flows[i] += r.Flows[i]
		}
		b.Total += r.Total
		b.Days++
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		for i := range b.Flows {
			b.Flows[i] = Round1(b.Flows[i])
		}
		b.Total = Round1(b.Total)
		out = append(out, *b)
	}
	return out
}

// Summarize derives the card figures from a canonical series: latest day,
// trailing five trading days, latest calendar month, the whole window, and the
// best and worst single days within it.
func Summarize(s Series) Summary {
	if len(s) == 0 {
		return Summary{}
	}
	latest := s[len(s)-1]
	sum := Summary{
		LatestDate: latest.Date,
		DayTotal:   latest.Total,
		BestDate:   s[0].Date,
		BestTotal:  s[0].Total,
		WorstDate:  s[0].Date,
		WorstTotal: s[0].Total,
	}

	for _, r := range s.Tail(5) {
		sum.WeekTotal += r.Total
	}
	month := latest.Date[:7]
	for _, r := range s {
		sum.NetTotal += r.Total
		if len(r.Date) >= 7 && r.Date[:7] == month {
			sum.MonthTotal += r.Total
		}
		if r.Total > sum.BestTotal {
			sum.BestDate, sum.BestTotal = r.Date, r.Total
		}
		if r.Total < sum.WorstTotal {
			sum.WorstDate, sum.WorstTotal = r.Date, r.Total
		}
	}
	sum.WeekTotal = Round1(sum.WeekTotal)
	sum.MonthTotal = Round1(sum.MonthTotal)
	sum.NetTotal = Round1(sum.NetTotal)
	return sum
}
