package agents

import (
	"fmt"

	"investment-company/models"
)

// RiskOfficer scores how far realized volatility runs above the target and
// publishes position limits through report metadata. The max_weight entry is
// the sole channel through which risk constrains portfolio synthesis.
type RiskOfficer struct {
	MaxWeightPerAsset float64
	MaxSectorExposure float64
	TargetVolatility  float64
}

// NewRiskOfficer creates a RiskOfficer with the default limits
func NewRiskOfficer() *RiskOfficer {
	return &RiskOfficer{
		MaxWeightPerAsset: 0.2,
		MaxSectorExposure: 0.5,
		TargetVolatility:  0.3,
	}
}

// Name returns the agent name
func (a *RiskOfficer) Name() string {
	return RiskOfficerName
}

// Analyze penalizes volatility above target. A sparse history (fewer than
// 2 valid returns) counts as zero volatility rather than an error.
func (a *RiskOfficer) Analyze(ctx *models.AnalysisContext) models.AgentReport {
	volatility := annualizedVolatility(ctx.PriceHistory)

	var penalty float64
	if a.TargetVolatility > 0 {
		penalty = clamp((volatility-a.TargetVolatility)/a.TargetVolatility, 0, 1)
	}
	score := clamp(0.5-penalty, -1, 1)

	return models.AgentReport{
		AgentName: a.Name(),
		Symbol:    ctx.Symbol,
		Score:     score,
		Rationale: fmt.Sprintf("Annualized volatility %.2f; penalty %.2f", volatility, penalty),
		Metadata: map[string]interface{}{
			"max_weight":          a.MaxWeightPerAsset,
			"max_sector_exposure": a.MaxSectorExposure,
			"volatility":          volatility,
		},
	}
}
