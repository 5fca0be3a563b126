package agents

import (
	"fmt"
	"strings"

	"investment-company/models"
)

// FundamentalAnalyst scores valuation and balance-sheet quality from the
// fundamentals snapshot. It is a pure function of the fundamentals mapping
// and ignores price history entirely; every metric is optional.
type FundamentalAnalyst struct{}

// NewFundamentalAnalyst creates a new FundamentalAnalyst
func NewFundamentalAnalyst() *FundamentalAnalyst {
	return &FundamentalAnalyst{}
}

// Name returns the agent name
func (a *FundamentalAnalyst) Name() string {
	return FundamentalAnalystName
}

// Analyze sums the contributions of whichever metrics are present.
// Absent or non-finite metrics are skipped, not penalized.
func (a *FundamentalAnalyst) Analyze(ctx *models.AnalysisContext) models.AgentReport {
	var score float64
	var reasons []string

	if pe, ok := metric(ctx.Fundamentals, models.MetricPERatio); ok {
		if pe > 0 && pe < 25 {
			score += 0.25
			reasons = append(reasons, fmt.Sprintf("PE attractive at %.1f", pe))
		} else if pe >= 40 {
			score -= 0.15
			reasons = append(reasons, fmt.Sprintf("PE elevated at %.1f", pe))
		}
	}

	if pb, ok := metric(ctx.Fundamentals, models.MetricPBRatio); ok {
		if pb < 4 {
			score += 0.1
			reasons = append(reasons, fmt.Sprintf("PB reasonable at %.1f", pb))
		} else if pb > 8 {
			score -= 0.1
			reasons = append(reasons, fmt.Sprintf("PB high at %.1f", pb))
		}
	}

	if yield, ok := metric(ctx.Fundamentals, models.MetricDividendYield); ok {
		bonus := yield * 5
		if bonus > 0.1 {
			bonus = 0.1
		}
		score += bonus
		reasons = append(reasons, fmt.Sprintf("Dividend yield %.2f%%", yield*100))
	}

	if leverage, ok := metric(ctx.Fundamentals, models.MetricDebtToAsset); ok {
		if leverage < 0.6 {
			score += 0.15
			reasons = append(reasons, fmt.Sprintf("Leverage manageable (%.2f)", leverage))
		} else {
			score -= 0.15
			reasons = append(reasons, fmt.Sprintf("Leverage high (%.2f)", leverage))
		}
	}

	if esg, ok := metric(ctx.Fundamentals, models.MetricESGScore); ok {
		score += clamp((esg-50)/200, -0.05, 0.1)
		reasons = append(reasons, fmt.Sprintf("ESG score %.1f", esg))
	}

	rationale := "Limited fundamentals available"
	if len(reasons) > 0 {
		rationale = strings.Join(reasons, "; ")
	}

	metadata := make(map[string]interface{}, len(ctx.Fundamentals))
	for name, value := range ctx.Fundamentals {
		if value != nil {
			metadata[name] = *value
		}
	}

	return models.AgentReport{
		AgentName: a.Name(),
		Symbol:    ctx.Symbol,
		Score:     clamp(score, -1, 1),
		Rationale: rationale,
		Metadata:  metadata,
	}
}

// metric returns a fundamentals value, treating absent, nil and non-finite
// entries as missing.
func metric(fundamentals map[string]*float64, name string) (float64, bool) {
	value, ok := fundamentals[name]
	if !ok || value == nil || !isFinite(*value) {
		return 0, false
	}
	return *value, true
}
