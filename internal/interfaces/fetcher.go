package interfaces

import "context"

// Fetcher retrieves the raw HTML document from the remote flow table.
// Implementations issue exactly one outbound GET per call and do not retry.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}
