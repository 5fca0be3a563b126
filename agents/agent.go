package agents

import (
	"math"

	"investment-company/models"
)

// Agent is implemented by every analyst participating in an investment
// meeting. Analyze maps an analysis context to a bounded score with a
// human-readable rationale; it must never return a non-finite score and
// must degrade to a neutral report instead of failing on partial data.
type Agent interface {
	Name() string
	Analyze(ctx *models.AnalysisContext) models.AgentReport
}

// Agent display names. The Portfolio Manager locates the Risk Officer's
// report by name, so these are part of the synthesis contract.
const (
	TechnicalAnalystName   = "Technical Analyst"
	FundamentalAnalystName = "Fundamental Analyst"
	SentimentAnalystName   = "Sentiment Analyst"
	RiskOfficerName        = "Risk Officer"
)

// tradingPeriodsPerYear is the annualization factor for daily volatility
const tradingPeriodsPerYear = 252

// clamp bounds value to [lower, upper]
func clamp(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}

// isFinite reports whether value is a finite real number
func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// safeMean computes the arithmetic mean treating non-finite entries as 0.0,
// so one poisoned score cannot poison the average.
func safeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		if isFinite(v) {
			sum += v
		}
	}
	return sum / float64(len(values))
}

// annualizedVolatility computes the population standard deviation of daily
// simple returns scaled by sqrt(252). Fewer than 2 valid returns yield 0.
func annualizedVolatility(series models.PriceSeries) float64 {
	returns := series.Returns()
	valid := returns[:0:0]
	for _, r := range returns {
		if isFinite(r) {
			valid = append(valid, r)
		}
	}
	if len(valid) < 2 {
		return 0
	}
	var sum float64
	for _, r := range valid {
		sum += r
	}
	mean := sum / float64(len(valid))
	var sq float64
	for _, r := range valid {
		sq += (r - mean) * (r - mean)
	}
	std := math.Sqrt(sq / float64(len(valid)))
	return std * math.Sqrt(tradingPeriodsPerYear)
}
