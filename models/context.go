package models

// NewsItem is one news headline with an optional summary
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// AnalysisContext is the immutable bundle handed to every scoring agent.
// Fundamentals values may be nil per metric; News may be empty.
// No agent mutates the context.
type AnalysisContext struct {
	Symbol       string              `json:"symbol"`
	PriceHistory PriceSeries         `json:"price_history"`
	Indicators   *IndicatorTable     `json:"indicators"`
	Fundamentals map[string]*float64 `json:"fundamentals"`
	News         []NewsItem          `json:"news"`
}

// Fundamental metric names used across agents and data providers
const (
	MetricMarketCap     = "market_cap"
	MetricPERatio       = "pe_ratio"
	MetricPBRatio       = "pb_ratio"
	MetricDividendYield = "dividend_yield"
	MetricDebtToAsset   = "debt_to_asset"
	MetricESGScore      = "esg_score"
)
