package backtest

import (
	"math"
	"testing"
	"time"

	"investment-company/models"
)

func seriesOf(closes ...float64) models.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PriceBar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return series
}

func decisionWithWeight(weight float64) *models.Decision {
	d := &models.Decision{Symbol: "AAPL"}
	if weight > 0 {
		d.Orders = []models.Order{{
			Symbol: "AAPL",
			Action: models.OrderActionBuy,
			Weight: weight,
		}}
	}
	return d
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewEvaluator_DefaultsPeriods(t *testing.T) {
	if e := NewEvaluator(0); e.PeriodsPerYear != DefaultPeriodsPerYear {
		t.Errorf("expected default 252, got %d", e.PeriodsPerYear)
	}
	if e := NewEvaluator(WeeklyPeriodsPerYear); e.PeriodsPerYear != 52 {
		t.Errorf("expected 52, got %d", e.PeriodsPerYear)
	}
}

func TestEvaluate_EmptySeries(t *testing.T) {
	evaluator := NewEvaluator(252)

	report := evaluator.Evaluate(decisionWithWeight(0.5), nil)

	if report.TotalReturn != 0 || report.MaxDrawdown != 0 || report.SharpeRatio != 0 {
		t.Errorf("expected zero metrics for empty series, got %+v", report)
	}
	if report.CumulativeReturns["portfolio"] != 0 {
		t.Errorf("expected portfolio cumulative return 0, got %v", report.CumulativeReturns["portfolio"])
	}
	if report.StartDate != "" || report.EndDate != "" {
		t.Errorf("expected empty dates, got %q..%q", report.StartDate, report.EndDate)
	}
}

func TestEvaluate_ZeroWeightFlatCurve(t *testing.T) {
	evaluator := NewEvaluator(252)
	series := seriesOf(100, 130, 70, 120, 60)

	report := evaluator.Evaluate(decisionWithWeight(0), series)

	if report.TotalReturn != 0 {
		t.Errorf("expected total return 0 with no market exposure, got %v", report.TotalReturn)
	}
	if report.MaxDrawdown != 0 {
		t.Errorf("expected max drawdown 0 on a flat curve, got %v", report.MaxDrawdown)
	}
	if report.AnnualizedReturn != 0 {
		t.Errorf("expected annualized return 0, got %v", report.AnnualizedReturn)
	}
	if report.SharpeRatio != 0 {
		t.Errorf("expected sharpe 0, got %v", report.SharpeRatio)
	}
}

func TestEvaluate_FullWeightTracksAsset(t *testing.T) {
	evaluator := NewEvaluator(252)
	series := seriesOf(100, 110, 99)

	report := evaluator.Evaluate(decisionWithWeight(1), series)

	// Curve: 1.0, 1.1, 0.99
	if !approx(report.TotalReturn, -0.01, 1e-9) {
		t.Errorf("expected total return -0.01, got %v", report.TotalReturn)
	}
	if !approx(report.MaxDrawdown, -0.1, 1e-9) {
		t.Errorf("expected max drawdown -0.1, got %v", report.MaxDrawdown)
	}
	if !approx(report.CumulativeReturns["portfolio"], -0.01, 1e-9) {
		t.Errorf("expected cumulative portfolio return -0.01, got %v", report.CumulativeReturns["portfolio"])
	}
	if report.StartDate != "2024-01-01" || report.EndDate != "2024-01-03" {
		t.Errorf("unexpected date range %q..%q", report.StartDate, report.EndDate)
	}
}

func TestEvaluate_PartialWeightScalesExposure(t *testing.T) {
	evaluator := NewEvaluator(252)
	series := seriesOf(100, 110)

	report := evaluator.Evaluate(decisionWithWeight(0.5), series)

	// Half the 10% move: 1 + 0.5 x 0.1
	if !approx(report.TotalReturn, 0.05, 1e-9) {
		t.Errorf("expected total return 0.05, got %v", report.TotalReturn)
	}
	// mean([0, 0.1]) x 252 x 0.5
	if !approx(report.AnnualizedReturn, 6.3, 1e-9) {
		t.Errorf("expected annualized return 6.3, got %v", report.AnnualizedReturn)
	}
	// 6.3 / (sampleStd([0,0.1]) x sqrt(252) x 0.5)
	if !approx(report.SharpeRatio, 11.224972, 1e-3) {
		t.Errorf("expected sharpe ~11.225, got %v", report.SharpeRatio)
	}
}

func TestEvaluate_ZeroCloseGuard(t *testing.T) {
	evaluator := NewEvaluator(252)
	series := seriesOf(0, 100, 100)

	report := evaluator.Evaluate(decisionWithWeight(1), series)

	// A zero previous close contributes a zero return, never Inf.
	if math.IsNaN(report.TotalReturn) || math.IsInf(report.TotalReturn, 0) {
		t.Fatalf("expected finite total return, got %v", report.TotalReturn)
	}
	if report.TotalReturn != 0 {
		t.Errorf("expected total return 0, got %v", report.TotalReturn)
	}
}

func TestEvaluate_AlwaysFinite(t *testing.T) {
	evaluator := NewEvaluator(252)
	series := seriesOf(100, 0, 50, 0, 25)

	report := evaluator.Evaluate(decisionWithWeight(0.0001), series)

	for name, v := range map[string]float64{
		"total_return":      report.TotalReturn,
		"annualized_return": report.AnnualizedReturn,
		"sharpe_ratio":      report.SharpeRatio,
		"max_drawdown":      report.MaxDrawdown,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"monotonic rise", []float64{1, 1.1, 1.2}, 0},
		{"single trough", []float64{1, 1.2, 0.9, 1.1}, (0.9 - 1.2) / 1.2},
		{"deepest of two troughs", []float64{1, 0.95, 1.2, 0.6}, (0.6 - 1.2) / 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxDrawdown(tt.curve); !approx(got, tt.want, 1e-12) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
