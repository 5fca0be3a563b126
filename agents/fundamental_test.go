package agents

import (
	"math"
	"strings"
	"testing"

	"investment-company/models"
)

func TestFundamentalAnalyst_Scoring(t *testing.T) {
	tests := []struct {
		name         string
		fundamentals map[string]*float64
		wantScore    float64
	}{
		{
			name: "all favorable",
			fundamentals: map[string]*float64{
				models.MetricPERatio:       fptr(15),
				models.MetricPBRatio:       fptr(1.2),
				models.MetricDividendYield: fptr(0.01),
				models.MetricDebtToAsset:   fptr(0.3),
				models.MetricESGScore:      fptr(70),
			},
			// 0.25 + 0.1 + 0.05 + 0.15 + 0.1
			wantScore: 0.65,
		},
		{
			name: "expensive and leveraged",
			fundamentals: map[string]*float64{
				models.MetricPERatio:     fptr(45),
				models.MetricDebtToAsset: fptr(0.8),
			},
			wantScore: -0.3,
		},
		{
			name: "dividend bonus capped",
			fundamentals: map[string]*float64{
				models.MetricDividendYield: fptr(0.05),
			},
			wantScore: 0.1,
		},
		{
			name: "price to book punished when high",
			fundamentals: map[string]*float64{
				models.MetricPBRatio: fptr(9),
			},
			wantScore: -0.1,
		},
		{
			name: "esg penalty clamped",
			fundamentals: map[string]*float64{
				models.MetricESGScore: fptr(0),
			},
			wantScore: -0.05,
		},
		{
			name: "mid-range metrics contribute nothing",
			fundamentals: map[string]*float64{
				models.MetricPERatio: fptr(30),
				models.MetricPBRatio: fptr(5),
			},
			wantScore: 0,
		},
	}

	analyst := NewFundamentalAnalyst()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := analyst.Analyze(&models.AnalysisContext{
				Symbol:       "AAPL",
				Fundamentals: tt.fundamentals,
			})
			if !approxEq(report.Score, tt.wantScore, 1e-9) {
				t.Errorf("expected score %v, got %v", tt.wantScore, report.Score)
			}
			if report.Score < -1 || report.Score > 1 {
				t.Errorf("score out of bounds: %v", report.Score)
			}
		})
	}
}

func TestFundamentalAnalyst_NoMetrics(t *testing.T) {
	analyst := NewFundamentalAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol:       "AAPL",
		Fundamentals: map[string]*float64{},
	})

	if report.Score != 0 {
		t.Errorf("expected score 0, got %v", report.Score)
	}
	if report.Rationale != "Limited fundamentals available" {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
}

func TestFundamentalAnalyst_NilAndNonFiniteIgnored(t *testing.T) {
	analyst := NewFundamentalAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		Fundamentals: map[string]*float64{
			models.MetricPERatio:     nil,
			models.MetricPBRatio:     fptr(math.NaN()),
			models.MetricDebtToAsset: fptr(math.Inf(1)),
		},
	})

	if report.Score != 0 {
		t.Errorf("expected non-finite metrics to be skipped, got score %v", report.Score)
	}
	if report.Rationale != "Limited fundamentals available" {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
}

func TestFundamentalAnalyst_MetadataEchoesPresentMetrics(t *testing.T) {
	analyst := NewFundamentalAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		Fundamentals: map[string]*float64{
			models.MetricPERatio:   fptr(18),
			models.MetricMarketCap: fptr(2e12),
			models.MetricPBRatio:   nil,
		},
	})

	if pe, ok := report.Metadata[models.MetricPERatio].(float64); !ok || pe != 18 {
		t.Errorf("expected pe_ratio=18 in metadata, got %v", report.Metadata[models.MetricPERatio])
	}
	if _, ok := report.Metadata[models.MetricPBRatio]; ok {
		t.Error("expected nil metric to be absent from metadata")
	}
	if !strings.Contains(report.Rationale, "PE attractive") {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
}
