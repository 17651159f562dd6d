package types

// NumFunds is the size of the fixed fund universe.
const NumFunds = 10

// Fund is static reference data for one spot-ETF: wire ticker, display
// metadata for the front end, and the calibration range used by the synthetic
// generator. The range is asymmetric on purpose: historical flows are
// inflow-dominant for every fund except GBTC.
type Fund struct {
	Ticker string
	Name   string
	Color  string
	// Synthetic daily flow range in USD millions, [FlowMin, FlowMax].
	FlowMin float64
	FlowMax float64
}

// Funds is the closed, ordered fund universe. Column order on the source page
// and key order on the wire both follow this slice; never derive it from input.
var Funds = [NumFunds]Fund{
	{Ticker: "IBIT", Name: "iShares Bitcoin Trust (BlackRock)", Color: "#F59E0B", FlowMin: -80, FlowMax: 650},
	{Ticker: "FBTC", Name: "Fidelity Wise Origin Bitcoin Fund", Color: "#10B981", FlowMin: -40, FlowMax: 320},
	{Ticker: "GBTC", Name: "Grayscale Bitcoin Trust", Color: "#EF4444", FlowMin: -250, FlowMax: 80},
	{Ticker: "ARKB", Name: "ARK 21Shares Bitcoin ETF", Color: "#8B5CF6", FlowMin: -30, FlowMax: 180},
	{Ticker: "BITB", Name: "Bitwise Bitcoin ETF", Color: "#3B82F6", FlowMin: -20, FlowMax: 130},
	{Ticker: "HODL", Name: "VanEck Bitcoin Trust", Color: "#F97316", FlowMin: -10, FlowMax: 55},
	{Ticker: "BRRR", Name: "Valkyrie Bitcoin Fund", Color: "#EC4899", FlowMin: -8, FlowMax: 40},
	{Ticker: "EZBC", Name: "Franklin Bitcoin ETF", Color: "#14B8A6", FlowMin: -5, FlowMax: 35},
	{Ticker: "BTCO", Name: "Invesco Galaxy Bitcoin ETF", Color: "#6366F1", FlowMin: -5, FlowMax: 30},
	{Ticker: "DEFI", Name: "Hashdex Bitcoin ETF", Color: "#84CC16", FlowMin: -3, FlowMax: 20},
}

// Tickers returns the fund tickers in canonical order.
func Tickers() []string {
	out := make([]string, NumFunds)
	for i, f := range Funds {
		out[i] = f.Ticker
	}
	return out
}
