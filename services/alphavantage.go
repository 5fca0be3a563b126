package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"investment-company/models"
	"investment-company/observability"
)

// AlphaVantageService fetches company fundamentals from the Alpha Vantage API
type AlphaVantageService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewAlphaVantageService creates a new AlphaVantageService instance
func NewAlphaVantageService(apiKey string) *AlphaVantageService {
	return &AlphaVantageService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.alphavantage.co/query",
	}
}

// OverviewResponse represents the company overview response from Alpha Vantage
type OverviewResponse struct {
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Sector        string `json:"Sector"`
	MarketCap     string `json:"MarketCapitalization"`
	PERatio       string `json:"PERatio"`
	PBRatio       string `json:"PriceToBookRatio"`
	DividendYield string `json:"DividendYield"`
}

// GetFundamentals returns fundamental metrics for a symbol. Fields Alpha
// Vantage reports as empty or "None" are omitted from the map so agents can
// distinguish missing data from zero values.
func (s *AlphaVantageService) GetFundamentals(ctx context.Context, symbol string) (map[string]*float64, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest("alphavantage", "fundamentals")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider("alphavantage", "fundamentals")

	var overview OverviewResponse
	err := WithRetry(ctx, DefaultRetryConfig, func() error {
		_, err := WithCircuitBreaker(ctx, BreakerAlphaVantage, func() (struct{}, error) {
			params := url.Values{}
			params.Set("function", "OVERVIEW")
			params.Set("symbol", symbol)
			params.Set("apikey", s.apiKey)

			req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
			if err != nil {
				return struct{}{}, fmt.Errorf("failed to create request: %w", err)
			}

			resp, err := s.httpClient.Do(req)
			if err != nil {
				return struct{}{}, fmt.Errorf("failed to fetch overview: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return struct{}{}, fmt.Errorf("Alpha Vantage returned status %d", resp.StatusCode)
			}

			if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
				return struct{}{}, fmt.Errorf("failed to decode overview: %w", err)
			}
			return struct{}{}, nil
		})
		return err
	})
	if err != nil {
		metrics.RecordProviderError("alphavantage", "fundamentals")
		return nil, err
	}

	fundamentals := map[string]*float64{}
	setMetric(fundamentals, models.MetricMarketCap, overview.MarketCap)
	setMetric(fundamentals, models.MetricPERatio, overview.PERatio)
	setMetric(fundamentals, models.MetricPBRatio, overview.PBRatio)
	setMetric(fundamentals, models.MetricDividendYield, overview.DividendYield)

	return fundamentals, nil
}

// setMetric parses an Alpha Vantage numeric string into the metrics map.
// Empty, "None" and unparseable values leave the metric absent.
func setMetric(metrics map[string]*float64, key, raw string) {
	if raw == "" || raw == "None" || raw == "-" {
		return
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		observability.Warn("failed to parse fundamentals field",
			"metric", key, "value", raw, "error", err)
		return
	}
	metrics[key] = &parsed
}
