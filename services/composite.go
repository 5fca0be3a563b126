package services

import (
	"context"
	"time"

	"investment-company/models"
	"investment-company/observability"
)

// CompositeProvider routes each data operation to its configured live source
// and falls back to the deterministic offline provider when the source is
// missing or failing. A failed source is remembered for the health cache TTL
// so subsequent symbols go straight to the fallback.
type CompositeProvider struct {
	prices       PriceHistorySource
	fundamentals FundamentalsSource
	news         NewsSource
	offline      *OfflineProvider

	priceHealth        *HealthCache
	fundamentalsHealth *HealthCache
	newsHealth         *HealthCache
}

// NewCompositeProvider creates a provider over the given live sources.
// Any source may be nil, in which case its operation is always offline.
func NewCompositeProvider(prices PriceHistorySource, fundamentals FundamentalsSource, news NewsSource) *CompositeProvider {
	return &CompositeProvider{
		prices:             prices,
		fundamentals:       fundamentals,
		news:               news,
		offline:            NewOfflineProvider(),
		priceHealth:        NewHealthCache(DefaultHealthCacheTTL),
		fundamentalsHealth: NewHealthCache(DefaultHealthCacheTTL),
		newsHealth:         NewHealthCache(DefaultHealthCacheTTL),
	}
}

// useLive reports whether the live source should be attempted
func useLive(cache *HealthCache) bool {
	available, valid := cache.Get()
	return !valid || available
}

// GetPriceHistory fetches bars from the live source, falling back to the
// offline generator on failure.
func (p *CompositeProvider) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (models.PriceSeries, error) {
	if p.prices != nil && useLive(p.priceHealth) {
		series, err := p.prices.GetPriceHistory(ctx, symbol, start, end, interval)
		if err == nil && len(series) > 0 {
			p.priceHealth.Set(true)
			return series, nil
		}
		if err != nil {
			observability.Warn("live price source failed, using offline data",
				"symbol", symbol, "error", err)
			p.priceHealth.Set(false)
		}
	}
	return p.offline.GetPriceHistory(ctx, symbol, start, end, interval)
}

// GetFundamentals fetches metrics from the live source, falling back to the
// offline snapshot on failure.
func (p *CompositeProvider) GetFundamentals(ctx context.Context, symbol string) (map[string]*float64, error) {
	if p.fundamentals != nil && useLive(p.fundamentalsHealth) {
		metrics, err := p.fundamentals.GetFundamentals(ctx, symbol)
		if err == nil {
			p.fundamentalsHealth.Set(true)
			return metrics, nil
		}
		observability.Warn("live fundamentals source failed, using offline data",
			"symbol", symbol, "error", err)
		p.fundamentalsHealth.Set(false)
	}
	return p.offline.GetFundamentals(ctx, symbol)
}

// GetRecentNews fetches headlines from the live source, falling back to the
// offline placeholders on failure.
func (p *CompositeProvider) GetRecentNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if p.news != nil && useLive(p.newsHealth) {
		items, err := p.news.GetRecentNews(ctx, symbol, limit)
		if err == nil {
			p.newsHealth.Set(true)
			return items, nil
		}
		observability.Warn("live news source failed, using offline data",
			"symbol", symbol, "error", err)
		p.newsHealth.Set(false)
	}
	return p.offline.GetRecentNews(ctx, symbol, limit)
}
