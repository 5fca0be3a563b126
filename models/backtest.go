package models

// BacktestReport summarizes the retrospective performance of a decision's
// implied weight replayed against the historical price series. All fields
// are derived, read-only, and always finite.
type BacktestReport struct {
	StartDate         string             `json:"start_date"`
	EndDate           string             `json:"end_date"`
	TotalReturn       float64            `json:"total_return"`
	AnnualizedReturn  float64            `json:"annualized_return"`
	SharpeRatio       float64            `json:"sharpe_ratio"`
	MaxDrawdown       float64            `json:"max_drawdown"`
	CumulativeReturns map[string]float64 `json:"cumulative_returns"`
}
