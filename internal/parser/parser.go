package parser

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"btc-etf-flows/internal/interfaces"
	"btc-etf-flows/internal/types"
)

// ErrInsufficientData signals that the document was structurally parseable
// but yielded too few valid rows, which usually means the source page layout
// changed underneath us.
var ErrInsufficientData = errors.New("too few valid rows in flow table")

// minCells is the structural row filter: a date column plus at least five
// data columns. Header, footer, and decoration rows fall below this.
const minCells = 6

// Loose date-shape pre-filters. Anything that matches neither is dropped
// before date parsing, so ambiguous strings are rejected instead of
// mis-parsed.
var (
	tokenDateRe = regexp.MustCompile(`^\d{1,2}[/-]\w+[/-]\d{2,4}$`)
	textDateRe  = regexp.MustCompile(`^[A-Za-z]+ \d+`)
)

// Layouts covering the date shapes the pre-filters admit. All parse in UTC;
// the calendar day must never shift with the local timezone.
var dateLayouts = []string{
	"2-Jan-2006",
	"2/Jan/2006",
	"2-Jan-06",
	"2/Jan/06",
	"2-January-2006",
	"2-01-2006",
	"2/01/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
}

// Parser turns the raw flow-table HTML into a typed series. Parsing is
// tolerant by design: the markup is third-party and drifts, so rows are
// defensively filtered and malformed cells degrade to zero rather than
// aborting the row.
type Parser struct {
	minRows int
}

var _ interfaces.Parser = (*Parser)(nil)

func New(minRows int) *Parser {
	return &Parser{minRows: minRows}
}

// Parse scans every table row in the document. The page layout does not
// guarantee a single unambiguous table, so scanning broadly and filtering is
// the robust strategy. Emission order follows the document; callers own the
// canonical sort.
func (p *Parser) Parse(html []byte) (types.Series, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	recs := make([]types.DayRecord, 0, 128)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}
		texts := make([]string, cells.Length())
		cells.Each(func(i int, c *goquery.Selection) {
			texts[i] = strings.TrimSpace(c.Text())
		})

		date, ok := parseRowDate(texts[0])
		if !ok {
			return
		}

		var flows [types.NumFunds]float64
		sum := decimal.Zero
		for i := range types.Funds {
			var cell string
			if i+1 < len(texts) {
				cell = texts[i+1]
			}
			d := coerceCell(cell)
			flows[i] = d.InexactFloat64()
			sum = sum.Add(d)
		}

		recs = append(recs, types.DayRecord{
			Date:  date,
			Flows: flows,
			Total: sum.Round(1).InexactFloat64(),
		})
	})

	if len(recs) < p.minRows {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, len(recs), p.minRows)
	}
	return types.Series(recs), nil
}

// parseRowDate applies the loose shape pre-filter, then tries the known
// layouts, and normalizes to YYYY-MM-DD.
func parseRowDate(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if !tokenDateRe.MatchString(text) && !textDateRe.MatchString(text) {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC().Format("2006-01-02"), true
		}
	}
	return "", false
}

var cellCleaner = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

// coerceCell turns a raw cell into a signed one-decimal value. Accounting
// notation "(12.3)" means -12.3; a lone dash or empty cell means 0; anything
// still unparsable after cleaning also degrades to 0.
func coerceCell(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	neg := false
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = cellCleaner.Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		d = d.Neg()
	}
	return d.Round(1)
}
