package agents

import (
	"context"
	"math"
	"sync"
	"time"

	"investment-company/models"
)

// testSeries builds a daily price series from closing prices, starting at
// 2024-01-01. Open/High/Low mirror the close; tests that care about bands
// build indicator tables directly instead.
func testSeries(closes ...float64) models.PriceSeries {
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

func fptr(v float64) *float64 {
	return &v
}

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// indicatorContext builds a context whose single indicator row holds the
// given values, with sufficient-history metadata.
func indicatorContext(symbol string, series models.PriceSeries, values map[string]float64) *models.AnalysisContext {
	last, _ := series.Last()
	return &models.AnalysisContext{
		Symbol:       symbol,
		PriceHistory: series,
		Indicators: &models.IndicatorTable{
			Rows: []models.IndicatorRow{{Timestamp: last.Timestamp, Values: values}},
			Meta: models.IndicatorMeta{Observations: len(series), MinRequired: len(series)},
		},
		Fundamentals: map[string]*float64{},
	}
}

// mockProvider implements MarketDataProvider with per-operation hooks.
// Unset hooks return empty results.
type mockProvider struct {
	priceFn        func(symbol string) (models.PriceSeries, error)
	fundamentalsFn func(symbol string) (map[string]*float64, error)
	newsFn         func(symbol string, limit int) ([]models.NewsItem, error)
}

func (p *mockProvider) GetPriceHistory(_ context.Context, symbol string, _, _ time.Time, _ string) (models.PriceSeries, error) {
	if p.priceFn == nil {
		return nil, nil
	}
	return p.priceFn(symbol)
}

func (p *mockProvider) GetFundamentals(_ context.Context, symbol string) (map[string]*float64, error) {
	if p.fundamentalsFn == nil {
		return map[string]*float64{}, nil
	}
	return p.fundamentalsFn(symbol)
}

func (p *mockProvider) GetRecentNews(_ context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if p.newsFn == nil {
		return nil, nil
	}
	return p.newsFn(symbol, limit)
}

// mockStore records saved decisions and optionally fails every save.
type mockStore struct {
	mu    sync.Mutex
	saved []*models.Decision
	err   error
}

func (s *mockStore) SaveDecision(_ context.Context, decision *models.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, decision)
	return nil
}

func (s *mockStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}
