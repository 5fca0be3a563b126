package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"investment-company/models"
	"investment-company/observability"
)

// AlpacaService fetches historical price bars from the Alpaca market data API
type AlpacaService struct {
	dataClient *marketdata.Client
}

// NewAlpacaService creates a new AlpacaService instance
func NewAlpacaService(apiKey, apiSecret string) *AlpacaService {
	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &AlpacaService{dataClient: dataClient}
}

// timeframeFor maps a bar interval string to the Alpaca timeframe.
// Unknown intervals fall back to daily bars.
func timeframeFor(interval string) marketdata.TimeFrame {
	switch interval {
	case "1w":
		return marketdata.OneWeek
	case "1h":
		return marketdata.NewTimeFrame(1, marketdata.Hour)
	case "1m":
		return marketdata.OneMin
	default:
		return marketdata.OneDay
	}
}

// GetPriceHistory returns historical bars for a symbol in ascending
// timestamp order.
func (s *AlpacaService) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (models.PriceSeries, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest("alpaca", "price_history")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider("alpaca", "price_history")

	var bars []marketdata.Bar
	err := WithRetry(ctx, DefaultRetryConfig, func() error {
		result, err := WithCircuitBreaker(ctx, BreakerAlpaca, func() ([]marketdata.Bar, error) {
			return s.dataClient.GetBars(symbol, marketdata.GetBarsRequest{
				TimeFrame: timeframeFor(interval),
				Start:     start,
				End:       end,
			})
		})
		if err != nil {
			return err
		}
		bars = result
		return nil
	})
	if err != nil {
		metrics.RecordProviderError("alpaca", "price_history")
		return nil, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}

	series := make(models.PriceSeries, 0, len(bars))
	for _, bar := range bars {
		series = append(series, models.PriceBar{
			Timestamp: bar.Timestamp,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    int64(bar.Volume),
		})
	}

	return series, nil
}
