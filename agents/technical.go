package agents

import (
	"fmt"
	"strings"

	"investment-company/models"
)

// TechnicalAnalyst scores price trend and momentum from the most recent
// indicator row: SMA crossover, MACD histogram, RSI banding, Bollinger
// mean-reversion and a volatility dampener.
type TechnicalAnalyst struct{}

// NewTechnicalAnalyst creates a new TechnicalAnalyst
func NewTechnicalAnalyst() *TechnicalAnalyst {
	return &TechnicalAnalyst{}
}

// Name returns the agent name
func (a *TechnicalAnalyst) Name() string {
	return TechnicalAnalystName
}

// Analyze scores the context's latest indicator row. Missing indicators
// contribute nothing; an insufficient-history table yields a neutral report
// without reading any indicator fields.
func (a *TechnicalAnalyst) Analyze(ctx *models.AnalysisContext) models.AgentReport {
	if len(ctx.PriceHistory) == 0 {
		return models.AgentReport{
			AgentName: a.Name(),
			Symbol:    ctx.Symbol,
			Score:     0,
			Rationale: "No price history available",
			Metadata:  map[string]interface{}{},
		}
	}

	if ctx.Indicators.Empty() || ctx.Indicators.Meta.InsufficientHistory {
		metadata := map[string]interface{}{
			"indicators_available": false,
			"price_points":         len(ctx.PriceHistory),
		}
		if ctx.Indicators != nil {
			metadata["required_points"] = ctx.Indicators.Meta.MinRequired
		}
		return models.AgentReport{
			AgentName: a.Name(),
			Symbol:    ctx.Symbol,
			Score:     0,
			Rationale: "Insufficient price history to compute indicators",
			Metadata:  metadata,
		}
	}

	latest, _ := ctx.Indicators.Latest()
	lastBar := ctx.PriceHistory[len(ctx.PriceHistory)-1]
	close := lastBar.Close

	var score float64
	var reasons []string

	smaFast, fastOK := latest.Get("sma_20")
	smaSlow, slowOK := latest.Get("sma_50")
	if fastOK && slowOK {
		if smaFast > smaSlow {
			score += 0.3
			reasons = append(reasons, "SMA20 above SMA50")
		} else {
			score -= 0.3
			reasons = append(reasons, "SMA20 below SMA50")
		}
	}

	if macdHist, ok := latest.Get("macd_hist"); ok {
		if macdHist > 0 {
			score += 0.2
			reasons = append(reasons, "MACD histogram positive")
		} else {
			score -= 0.2
			reasons = append(reasons, "MACD histogram negative")
		}
	}

	if rsi, ok := latest.Get("rsi"); ok {
		switch {
		case rsi >= 45 && rsi <= 70:
			score += 0.2
			reasons = append(reasons, fmt.Sprintf("RSI neutral-positive (%.1f)", rsi))
		case rsi < 35:
			score -= 0.1
			reasons = append(reasons, fmt.Sprintf("RSI oversold (%.1f)", rsi))
		case rsi > 75:
			score -= 0.2
			reasons = append(reasons, fmt.Sprintf("RSI overbought (%.1f)", rsi))
		}
	}

	bbUpper, upperOK := latest.Get("bb_upper")
	bbLower, lowerOK := latest.Get("bb_lower")
	if upperOK && lowerOK {
		if close < bbLower {
			score += 0.1
			reasons = append(reasons, "Price near Bollinger lower band")
		} else if close > bbUpper {
			score -= 0.1
			reasons = append(reasons, "Price near Bollinger upper band")
		}
	}

	volatility := annualizedVolatility(ctx.PriceHistory)
	score += clamp(0.2-volatility, -0.2, 0.2)
	reasons = append(reasons, fmt.Sprintf("Annualized volatility %.2f", volatility))

	return models.AgentReport{
		AgentName: a.Name(),
		Symbol:    ctx.Symbol,
		Score:     clamp(score, -1, 1),
		Rationale: strings.Join(reasons, "; "),
		Metadata: map[string]interface{}{
			"close":             close,
			"volatility":        volatility,
			"latest_indicators": latest.Values,
		},
	}
}
