package interfaces

import "btc-etf-flows/internal/types"

// Parser extracts a flow series from a raw HTML document. Emission order is
// unspecified; callers canonicalize before use.
type Parser interface {
	Parse(html []byte) (types.Series, error)
}
