package app

import (
	"context"
	"testing"
	"time"

	"investment-company/backtest"
	"investment-company/config"
)

func TestNew_WithoutCredentials(t *testing.T) {
	cfg := config.NewTestConfig()

	application := New(context.Background(), cfg)
	defer application.Close()

	if application.Meeting() == nil {
		t.Fatal("expected meeting to be wired")
	}
	if application.Repo() != nil {
		t.Error("expected nil repository without DATABASE_URL")
	}
}

func TestNew_DerivesPeriodsPerYearFromInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		override int
		want     int
	}{
		{"daily default", "1d", 0, backtest.DefaultPeriodsPerYear},
		{"weekly derives 52", "1w", 0, backtest.WeeklyPeriodsPerYear},
		{"explicit override wins", "1w", 252, 252},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Meeting.Interval = tt.interval
			cfg.Backtest.PeriodsPerYear = tt.override

			application := New(context.Background(), cfg)
			defer application.Close()

			got := application.Meeting().Evaluator().PeriodsPerYear
			if got != tt.want {
				t.Errorf("expected %d periods per year, got %d", tt.want, got)
			}
		})
	}
}

func TestNew_OfflinePipelineProducesDecisions(t *testing.T) {
	cfg := config.NewTestConfig()

	application := New(context.Background(), cfg)
	defer application.Close()

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	result := application.Meeting().Run(context.Background(), []string{"AAPL", "MSFT"}, start, end)

	if len(result.Failures) != 0 {
		t.Fatalf("expected no failures, got %v", result.Failures)
	}
	if len(result.Decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(result.Decisions))
	}
	for symbol, decision := range result.Decisions {
		if decision.Symbol != symbol {
			t.Errorf("decision symbol mismatch: key %s, decision %s", symbol, decision.Symbol)
		}
		if decision.Backtest == nil {
			t.Errorf("expected backtest report for %s", symbol)
		}
		if len(decision.AgentReports) != 4 {
			t.Errorf("expected 4 agent reports for %s, got %d", symbol, len(decision.AgentReports))
		}
	}
}
