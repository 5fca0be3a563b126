package agents

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"investment-company/models"
)

// ErrNoReports is returned when synthesis is attempted with no agent input
var ErrNoReports = errors.New("portfolio manager requires at least one agent report")

// Synthesis constants carried on every emitted order
const (
	orderEntryRule  = "SMA20>SMA50 & MACD histogram positive"
	orderStop       = 0.08
	orderTakeProfit = 0.2
	decisionNotes   = "Diversify across sectors; keep tech exposure <50%"
	holdingCashNote = "Confidence below threshold; holding cash"

	defaultRiskMaxWeight = 0.2
)

// PortfolioManager synthesizes the per-agent reports into one trade
// decision: a composite score, at most one order, and risk bounds.
type PortfolioManager struct {
	MaxGrossExposure float64
	MinConfidence    float64
}

// NewPortfolioManager creates a PortfolioManager with default exposure and
// confidence threshold.
func NewPortfolioManager() *PortfolioManager {
	return &PortfolioManager{
		MaxGrossExposure: 1.0,
		MinConfidence:    0.1,
	}
}

// Name returns the manager name
func (m *PortfolioManager) Name() string {
	return "Portfolio Manager"
}

// Synthesize averages the agent scores and sizes a position within the Risk
// Officer's published limit. Non-finite scores are treated as 0.0 rather
// than propagated. An empty report list is an invalid-input error: no agent
// ran, so there is nothing to decide from.
func (m *PortfolioManager) Synthesize(reports []models.AgentReport, ctx *models.AnalysisContext) (*models.Decision, error) {
	if len(reports) == 0 {
		return nil, ErrNoReports
	}

	scores := make([]float64, len(reports))
	for i, report := range reports {
		if isFinite(report.Score) {
			scores[i] = report.Score
		}
	}
	avgScore := safeMean(scores)

	var orders []models.Order
	notes := holdingCashNote
	if avgScore >= m.MinConfidence {
		maxWeight := riskMaxWeight(reports)
		weight := roundWeight(clamp(avgScore, 0, 1) * maxWeight)

		action := models.OrderActionHold
		if avgScore > 0 {
			action = models.OrderActionBuy
		}

		var rationales []string
		for _, report := range reports {
			if report.Rationale != "" {
				rationales = append(rationales, report.Rationale)
			}
		}

		orders = append(orders, models.Order{
			Symbol:     ctx.Symbol,
			Action:     action,
			Weight:     weight,
			EntryRule:  orderEntryRule,
			Stop:       orderStop,
			TakeProfit: orderTakeProfit,
			Rationale:  strings.Join(rationales, "; "),
		})
		notes = decisionNotes
	}

	return &models.Decision{
		AsOfDate:         asOfDate(ctx.PriceHistory),
		Symbol:           ctx.Symbol,
		CompositeScore:   avgScore,
		Orders:           orders,
		MaxGrossExposure: m.MaxGrossExposure,
		Notes:            notes,
		AgentReports:     reports,
	}, nil
}

// riskMaxWeight finds the Risk Officer's published max_weight, falling back
// to the default limit when the Risk Officer did not report.
func riskMaxWeight(reports []models.AgentReport) float64 {
	for _, report := range reports {
		if report.AgentName != RiskOfficerName {
			continue
		}
		switch v := report.Metadata["max_weight"].(type) {
		case float64:
			if isFinite(v) {
				return v
			}
		case int:
			return float64(v)
		}
	}
	return defaultRiskMaxWeight
}

// roundWeight rounds a position weight to 4 decimal places
func roundWeight(weight float64) float64 {
	rounded, _ := decimal.NewFromFloat(weight).Round(4).Float64()
	return rounded
}

// asOfDate formats the last price timestamp as an ISO date
func asOfDate(series models.PriceSeries) string {
	last, ok := series.Last()
	if !ok {
		return ""
	}
	return last.Timestamp.Format("2006-01-02")
}

// String describes the manager's configuration, mainly for logs
func (m *PortfolioManager) String() string {
	return fmt.Sprintf("PortfolioManager(max_gross_exposure=%.2f, min_confidence=%.2f)",
		m.MaxGrossExposure, m.MinConfidence)
}
