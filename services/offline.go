package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"investment-company/models"
)

// OfflineProvider generates deterministic synthetic market data so the full
// pipeline can run without network access or API keys. The same symbol and
// date range always produce the same series.
type OfflineProvider struct{}

// NewOfflineProvider creates an offline data provider
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// seedFor derives a stable seed from the request parameters
func seedFor(parts ...string) int64 {
	h := fnv.New64a()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return int64(h.Sum64() & math.MaxInt64)
}

// tradingDates returns the bar timestamps for the range at the given
// interval: business days for daily bars, Fridays for weekly.
func tradingDates(start, end time.Time, interval string) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch interval {
		case "1w":
			if d.Weekday() == time.Friday {
				dates = append(dates, d)
			}
		case "1d", "":
			if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
				dates = append(dates, d)
			}
		default:
			return nil, fmt.Errorf("unsupported interval %q for offline mode", interval)
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no trading dates in range %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return dates, nil
}

// GetPriceHistory generates a geometric random walk with a slight upward
// drift, seeded by the request parameters.
func (p *OfflineProvider) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (models.PriceSeries, error) {
	dates, err := tradingDates(start, end, interval)
	if err != nil {
		return nil, err
	}

	seed := seedFor(symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), interval)
	rng := rand.New(rand.NewSource(seed))

	series := make(models.PriceSeries, 0, len(dates))
	logPrice := 0.0
	for _, date := range dates {
		logPrice += rng.NormFloat64()*0.02 + 0.001
		price := 100 * math.Exp(logPrice)
		series = append(series, models.PriceBar{
			Timestamp: date,
			Open:      price * (1 + rng.NormFloat64()*0.005),
			High:      price * (1 + rng.Float64()*0.02),
			Low:       price * (1 - rng.Float64()*0.02),
			Close:     price,
			Volume:    1_000_000 + rng.Int63n(4_000_000),
		})
	}

	return series, nil
}

// GetFundamentals derives a stable fundamentals snapshot from the symbol.
// A zero dividend yield is reported as missing, matching providers that
// omit the field for non-paying companies.
func (p *OfflineProvider) GetFundamentals(ctx context.Context, symbol string) (map[string]*float64, error) {
	base := float64(seedFor(symbol) % 1_000_000)

	marketCap := 1e9 + base*1_000
	peRatio := 10 + math.Mod(base, 150)/10
	pbRatio := 1 + math.Mod(base, 50)/20
	dividendYield := math.Mod(base, 300) / 3000
	esgScore := 40 + math.Mod(base, 30)
	debtToAsset := math.Mod(base, 70) / 100

	metrics := map[string]*float64{
		models.MetricMarketCap:   &marketCap,
		models.MetricPERatio:     &peRatio,
		models.MetricPBRatio:     &pbRatio,
		models.MetricESGScore:    &esgScore,
		models.MetricDebtToAsset: &debtToAsset,
	}
	if dividendYield > 0 {
		metrics[models.MetricDividendYield] = &dividendYield
	} else {
		metrics[models.MetricDividendYield] = nil
	}

	return metrics, nil
}

// GetRecentNews produces placeholder headlines. The mix of mildly positive
// and neutral wording keeps the sentiment signal plausible but weak.
func (p *OfflineProvider) GetRecentNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 10
	}

	items := make([]models.NewsItem, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, models.NewsItem{
			Title:   fmt.Sprintf("Offline headline %d for %s", i+1, symbol),
			Summary: fmt.Sprintf("Synthetic market commentary on %s for offline runs.", symbol),
		})
	}
	return items, nil
}
