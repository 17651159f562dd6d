package types

import "testing"

// Two trading weeks spanning a month boundary.
func sampleSeries() Series {
	return Canonicalize([]DayRecord{
		day("2024-01-30", 10.0), // Tuesday, week of Jan 29
		day("2024-01-31", 20.0),
		day("2024-02-01", -5.0),
		day("2024-02-02", 15.0),
		day("2024-02-05", 30.0), // Monday, next week
	})
}

func TestAggregateWeekly(t *testing.T) {
	buckets := AggregateWeekly(sampleSeries())

	if len(buckets) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(buckets))
	}
	first := buckets[0]
	if first.WeekStart != "2024-01-29" {
		t.Errorf("expected week start 2024-01-29, got %s", first.WeekStart)
	}
	if first.Total != 40.0 {
		t.Errorf("expected week total 40.0, got %v", first.Total)
	}
	if first.Days != 4 {
		t.Errorf("expected 4 trading days, got %d", first.Days)
	}
	if buckets[1].WeekStart != "2024-02-05" || buckets[1].Total != 30.0 {
		t.Errorf("unexpected second week: %+v", buckets[1])
	}
}

func TestAggregateMonthly(t *testing.T) {
	s := sampleSeries()
	for i := range s {
		s[i].Flows[0] = 1.5 // constant IBIT flow to check per-fund sums
	}

	buckets := AggregateMonthly(s)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 months, got %d", len(buckets))
	}
	jan := buckets[0]
	if jan.Month != "2024-01" || jan.Days != 2 {
		t.Errorf("unexpected January bucket: %+v", jan)
	}
	if jan.Total != 30.0 {
		t.Errorf("expected January total 30.0, got %v", jan.Total)
	}
	if jan.Flows[0] != 3.0 {
		t.Errorf("expected January IBIT sum 3.0, got %v", jan.Flows[0])
	}
	feb := buckets[1]
	if feb.Month != "2024-02" || feb.Total != 40.0 || feb.Days != 3 {
		t.Errorf("unexpected February bucket: %+v", feb)
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleSeries())

	if sum.LatestDate != "2024-02-05" {
		t.Errorf("expected latest date 2024-02-05, got %s", sum.LatestDate)
	}
	if sum.DayTotal != 30.0 {
		t.Errorf("expected day total 30.0, got %v", sum.DayTotal)
	}
	if sum.WeekTotal != 70.0 { // all five records fall in the trailing window
		t.Errorf("expected week total 70.0, got %v", sum.WeekTotal)
	}
	if sum.MonthTotal != 40.0 { // February records only
		t.Errorf("expected month total 40.0, got %v", sum.MonthTotal)
	}
	if sum.NetTotal != 70.0 {
		t.Errorf("expected net total 70.0, got %v", sum.NetTotal)
	}
	if sum.BestDate != "2024-02-05" || sum.BestTotal != 30.0 {
		t.Errorf("unexpected best day: %s %v", sum.BestDate, sum.BestTotal)
	}
	if sum.WorstDate != "2024-02-01" || sum.WorstTotal != -5.0 {
		t.Errorf("unexpected worst day: %s %v", sum.WorstDate, sum.WorstTotal)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if sum := Summarize(nil); sum != (Summary{}) {
		t.Errorf("expected zero summary for empty series, got %+v", sum)
	}
}
