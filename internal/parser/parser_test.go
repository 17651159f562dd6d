package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-etf-flows/internal/types"
)

// fixtureHTML mirrors the source page: the flow table sits among decoration
// markup, newest rows first, with header/footer rows that must be filtered.
const fixtureHTML = `<html><body>
<div><table><tr><td>nav</td><td>spacer</td></tr></table></div>
<table>
<tr><th>Date</th><th>IBIT</th><th>FBTC</th><th>GBTC</th><th>ARKB</th><th>BITB</th><th>HODL</th><th>BRRR</th><th>EZBC</th><th>BTCO</th><th>DEFI</th></tr>
<tr><td>Jan 17, 2024</td><td>371.4</td><td>115.7</td><td>(460.0)</td><td>13.0</td><td>21.1</td><td>5.4</td><td>2.1</td><td>1.6</td><td>0.0</td><td>-</td></tr>
<tr><td>Jan 16, 2024</td><td>$1,234.5</td><td>80.2</td><td>(594.3)</td><td>25.1</td><td>33.0</td><td>8.8</td><td>3.2</td><td>2.2</td><td>1.1</td><td>0.3</td></tr>
<tr><td>Jan 15, 2024</td><td>145.0</td><td>60.0</td><td>(120.5)</td><td>12.3</td><td>9.9</td><td>n/a</td><td>1.0</td><td></td><td>0.5</td><td>0.1</td></tr>
<tr><td>Jan 12, 2024</td><td>710.0</td><td>300.5</td><td>(95.0)</td><td>40.0</td><td>25.0</td><td>6.0</td><td>2.5</td><td>1.5</td><td>1.0</td><td>0.2</td></tr>
<tr><td>Jan 11, 2024</td><td>100.2</td><td>(30.5)</td><td>(200.0)</td><td>50.1</td><td>10.0</td><td>5.0</td><td>2.0</td><td>1.0</td><td>1.0</td><td>0.5</td></tr>
<tr><td>Total</td><td>2561.1</td><td>525.9</td><td>(1469.8)</td><td>140.5</td><td>99.0</td><td>25.2</td><td>10.8</td><td>6.3</td><td>3.6</td><td>1.1</td></tr>
<tr><td colspan="11">Figures in USD millions</td></tr>
</table>
</body></html>`

func TestParseFixture(t *testing.T) {
	p := New(5)

	series, err := p.Parse([]byte(fixtureHTML))
	require.NoError(t, err)
	require.Len(t, series, 5) // header, nav, total, and footer rows filtered out

	// Emission order follows the document: newest first.
	assert.Equal(t, "2024-01-17", series[0].Date)
	assert.Equal(t, "2024-01-11", series[4].Date)

	oldest := series[4]
	assert.Equal(t, 100.2, oldest.Flows[0])
	assert.Equal(t, -30.5, oldest.Flows[1], "parenthesized cell should be negative")
	assert.Equal(t, -200.0, oldest.Flows[2])
	assert.Equal(t, -60.7, oldest.Total)
}

func TestParseTotalInvariant(t *testing.T) {
	p := New(5)

	series, err := p.Parse([]byte(fixtureHTML))
	require.NoError(t, err)

	for _, r := range series {
		var sum float64
		for _, v := range r.Flows {
			sum += v
		}
		assert.Equal(t, types.Round1(sum), r.Total, "total must be the rounded sum for %s", r.Date)
	}
}

func TestParseTolerantCells(t *testing.T) {
	p := New(5)

	series, err := p.Parse([]byte(fixtureHTML))
	require.NoError(t, err)

	jan16 := series[1]
	assert.Equal(t, 1234.5, jan16.Flows[0], "currency symbol and thousands separator stripped")

	jan17 := series[0]
	assert.Equal(t, 0.0, jan17.Flows[9], "lone dash coerced to zero")

	jan15 := series[2]
	assert.Equal(t, 0.0, jan15.Flows[5], "unparsable cell coerced to zero")
	assert.Equal(t, 0.0, jan15.Flows[7], "empty cell coerced to zero")
}

func TestParseInsufficientRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table>")
	for _, date := range []string{"Jan 15, 2024", "Jan 16, 2024", "Jan 17, 2024"} {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>1.0</td><td>2.0</td><td>3.0</td><td>4.0</td><td>5.0</td></tr>", date)
	}
	b.WriteString("</table>")

	p := New(5)
	_, err := p.Parse([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestParseShortRowZeroFill(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table>")
	// Six cells: date plus five values; remaining funds must default to zero.
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "<tr><td>%d-Jan-2024</td><td>10.0</td><td>20.0</td><td>30.0</td><td>40.0</td><td>50.0</td></tr>", 15+i)
	}
	b.WriteString("</table>")

	p := New(5)
	series, err := p.Parse([]byte(b.String()))
	require.NoError(t, err)
	require.Len(t, series, 5)

	r := series[0]
	assert.Equal(t, "2024-01-15", r.Date)
	assert.Equal(t, 50.0, r.Flows[4])
	for i := 5; i < types.NumFunds; i++ {
		assert.Equal(t, 0.0, r.Flows[i])
	}
	assert.Equal(t, 150.0, r.Total)
}

func TestParseRowDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Jan 11, 2024", "2024-01-11", true},
		{"January 11, 2024", "2024-01-11", true},
		{"11-Jan-2024", "2024-01-11", true},
		{"11/Jan/24", "2024-01-11", true},
		{"11-01-2024", "2024-01-11", true},
		{"Total", "", false},
		{"", "", false},
		{"2024-01-11", "", false},     // not a shape the source emits
		{"32-Jan-2024", "", false},    // shape matches, calendar does not
		{"11-Foo-2024", "", false},    // shape matches, month does not
		{"Total 123", "", false},      // textual shape but not a date
	}
	for _, tc := range cases {
		got, ok := parseRowDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseRowDate(%q): expected (%q, %v), got (%q, %v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestCoerceCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(12.3)", "-12.3"},
		{"-", "0"},
		{"", "0"},
		{"$1,234.5", "1234.5"},
		{"  42.0 ", "42"},
		{"(1,000.0)", "-1000"},
		{"abc", "0"},
		{"(12.3", "0"}, // unbalanced parenthesis is not accounting notation
		{"-15.5", "-15.5"},
	}
	for _, tc := range cases {
		if got := coerceCell(tc.in).String(); got != tc.want {
			t.Errorf("coerceCell(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
