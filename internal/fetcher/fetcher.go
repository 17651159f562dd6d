package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"btc-etf-flows/internal/interfaces"
	"btc-etf-flows/internal/logger"
)

// ErrChallenge marks a response that is an anti-bot interstitial rather than
// the flow table. Matched via errors.Is on the returned *RetrievalError.
var ErrChallenge = errors.New("bot challenge page served instead of content")

// RetrievalError is the only error kind Fetch returns: transport failure,
// non-2xx status, or a challenge page.
type RetrievalError struct {
	URL    string
	Status int
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("retrieve %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("retrieve %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Substring markers of known interstitial challenge pages.
var challengeMarkers = []string{
	"Just a moment",
	"cf-challenge",
}

// Fetcher retrieves the raw flow-table HTML with a browser-like request
// signature. The source blocks default automated clients, so the User-Agent,
// Accept, and Accept-Language headers mimic a desktop browser.
type Fetcher struct {
	url     string
	timeout time.Duration
}

var _ interfaces.Fetcher = (*Fetcher)(nil)

func New(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{url: url, timeout: timeout}
}

// Fetch issues a single GET and returns the raw body. No retry: backoff, if
// any, belongs to the caching layer above.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RetrievalError{URL: f.url, Err: err}
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var body []byte
	var status int
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			body = r.Body
			status = r.StatusCode
		}
	})

	visitErr := c.Visit(f.url)
	c.Wait()

	// Challenge pages can arrive with any status; classify them first so the
	// caller never tries to parse an interstitial.
	if isChallenge(body) {
		logger.Warn(ctx, "Source served a challenge page", "url", f.url, "status", status)
		return nil, &RetrievalError{URL: f.url, Status: status, Err: ErrChallenge}
	}
	if visitErr != nil {
		return nil, &RetrievalError{URL: f.url, Status: status, Err: visitErr}
	}
	if status < 200 || status > 299 {
		return nil, &RetrievalError{URL: f.url, Status: status, Err: errors.New("non-success status")}
	}

	logger.Debug(ctx, "Fetched flow table", "url", f.url, "status", status, "bytes", len(body))
	return body, nil
}

func isChallenge(body []byte) bool {
	for _, marker := range challengeMarkers {
		if bytes.Contains(body, []byte(marker)) {
			return true
		}
	}
	return false
}
