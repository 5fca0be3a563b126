package services

import (
	"context"
	"time"

	"investment-company/models"
)

// PriceHistorySource supplies historical price bars for a symbol
type PriceHistorySource interface {
	GetPriceHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (models.PriceSeries, error)
}

// FundamentalsSource supplies fundamental metrics for a symbol. Metrics a
// provider cannot supply are absent from the map or carry a nil value.
type FundamentalsSource interface {
	GetFundamentals(ctx context.Context, symbol string) (map[string]*float64, error)
}

// NewsSource supplies recent news items for a symbol
type NewsSource interface {
	GetRecentNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

// Compile-time interface verification
var _ PriceHistorySource = (*AlpacaService)(nil)
var _ FundamentalsSource = (*AlphaVantageService)(nil)
var _ NewsSource = (*NewsAPIService)(nil)
var _ PriceHistorySource = (*OfflineProvider)(nil)
var _ FundamentalsSource = (*OfflineProvider)(nil)
var _ NewsSource = (*OfflineProvider)(nil)
var _ PriceHistorySource = (*CompositeProvider)(nil)
var _ FundamentalsSource = (*CompositeProvider)(nil)
var _ NewsSource = (*CompositeProvider)(nil)
