package agents

import (
	"errors"
	"math"
	"strings"
	"testing"

	"investment-company/models"
)

func report(name string, score float64) models.AgentReport {
	return models.AgentReport{
		AgentName: name,
		Symbol:    "AAPL",
		Score:     score,
		Rationale: name + " rationale",
	}
}

func TestSynthesize_EmptyReports(t *testing.T) {
	manager := NewPortfolioManager()

	_, err := manager.Synthesize(nil, &models.AnalysisContext{Symbol: "AAPL"})

	if !errors.Is(err, ErrNoReports) {
		t.Fatalf("expected ErrNoReports, got %v", err)
	}
}

func TestSynthesize_BelowConfidenceHoldsCash(t *testing.T) {
	manager := NewPortfolioManager()
	reports := []models.AgentReport{
		report(TechnicalAnalystName, 0.05),
		report(FundamentalAnalystName, 0.05),
	}
	ctx := &models.AnalysisContext{
		Symbol:       "AAPL",
		PriceHistory: testSeries(100, 101, 102),
	}

	decision, err := manager.Synthesize(reports, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decision.Orders) != 0 {
		t.Errorf("expected no orders below confidence threshold, got %d", len(decision.Orders))
	}
	if decision.Notes != holdingCashNote {
		t.Errorf("unexpected notes: %q", decision.Notes)
	}
	if !approxEq(decision.CompositeScore, 0.05, 1e-9) {
		t.Errorf("expected composite 0.05, got %v", decision.CompositeScore)
	}
	if decision.MaxGrossExposure != 1.0 {
		t.Errorf("expected max gross exposure 1.0, got %v", decision.MaxGrossExposure)
	}
	if decision.AsOfDate != "2024-01-03" {
		t.Errorf("expected as_of_date from the last bar, got %q", decision.AsOfDate)
	}
	if len(decision.AgentReports) != 2 {
		t.Errorf("expected input reports embedded, got %d", len(decision.AgentReports))
	}
}

func TestSynthesize_BuyOrderSizedByRiskLimit(t *testing.T) {
	manager := NewPortfolioManager()
	risk := report(RiskOfficerName, 0.4)
	risk.Metadata = map[string]interface{}{"max_weight": 0.1}
	reports := []models.AgentReport{
		report(TechnicalAnalystName, 0.6),
		risk,
	}
	ctx := &models.AnalysisContext{
		Symbol:       "AAPL",
		PriceHistory: testSeries(100, 101, 102),
	}

	decision, err := manager.Synthesize(reports, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decision.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(decision.Orders))
	}
	order := decision.Orders[0]
	if order.Action != models.OrderActionBuy {
		t.Errorf("expected buy action, got %q", order.Action)
	}
	// avg 0.5 x risk-published max_weight 0.1
	if !approxEq(order.Weight, 0.05, 1e-9) {
		t.Errorf("expected weight 0.05, got %v", order.Weight)
	}
	if order.EntryRule != orderEntryRule || order.Stop != orderStop || order.TakeProfit != orderTakeProfit {
		t.Errorf("unexpected order constants: %+v", order)
	}
	if !strings.Contains(order.Rationale, TechnicalAnalystName) || !strings.Contains(order.Rationale, "; ") {
		t.Errorf("expected joined rationales, got %q", order.Rationale)
	}
	if decision.Notes != decisionNotes {
		t.Errorf("unexpected notes: %q", decision.Notes)
	}
}

func TestSynthesize_DefaultRiskWeightWhenOfficerAbsent(t *testing.T) {
	manager := NewPortfolioManager()
	reports := []models.AgentReport{report(TechnicalAnalystName, 0.5)}
	ctx := &models.AnalysisContext{
		Symbol:       "AAPL",
		PriceHistory: testSeries(100, 101),
	}

	decision, err := manager.Synthesize(reports, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decision.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(decision.Orders))
	}
	if !approxEq(decision.Orders[0].Weight, 0.1, 1e-9) {
		t.Errorf("expected weight 0.5x0.2=0.1, got %v", decision.Orders[0].Weight)
	}
}

func TestSynthesize_NonFiniteScoreTreatedAsZero(t *testing.T) {
	manager := NewPortfolioManager()
	reports := []models.AgentReport{
		report(TechnicalAnalystName, math.NaN()),
		report(FundamentalAnalystName, 0.8),
	}
	ctx := &models.AnalysisContext{
		Symbol:       "AAPL",
		PriceHistory: testSeries(100, 101),
	}

	decision, err := manager.Synthesize(reports, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !isFinite(decision.CompositeScore) {
		t.Fatalf("composite score must be finite, got %v", decision.CompositeScore)
	}
	if !approxEq(decision.CompositeScore, 0.4, 1e-9) {
		t.Errorf("expected NaN treated as 0 (avg 0.4), got %v", decision.CompositeScore)
	}
	if !approxEq(decision.Orders[0].Weight, 0.08, 1e-9) {
		t.Errorf("expected weight 0.08, got %v", decision.Orders[0].Weight)
	}
}

func TestSynthesize_WeightRoundedToFourPlaces(t *testing.T) {
	manager := NewPortfolioManager()
	reports := []models.AgentReport{report(TechnicalAnalystName, 1.0 / 3.0)}
	ctx := &models.AnalysisContext{
		Symbol:       "AAPL",
		PriceHistory: testSeries(100, 101),
	}

	decision, err := manager.Synthesize(reports, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (1/3) x 0.2 = 0.0666... rounds to 0.0667
	if decision.Orders[0].Weight != 0.0667 {
		t.Errorf("expected weight 0.0667, got %v", decision.Orders[0].Weight)
	}
}

func TestSynthesize_EmptyPriceHistoryLeavesDateBlank(t *testing.T) {
	manager := NewPortfolioManager()
	reports := []models.AgentReport{report(TechnicalAnalystName, 0)}

	decision, err := manager.Synthesize(reports, &models.AnalysisContext{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.AsOfDate != "" {
		t.Errorf("expected empty as_of_date, got %q", decision.AsOfDate)
	}
}
