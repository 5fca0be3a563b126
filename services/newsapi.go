package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"investment-company/models"
	"investment-company/observability"
)

// NewsAPIService fetches recent headlines from NewsAPI.org
type NewsAPIService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewNewsAPIService creates a new NewsAPIService instance
func NewNewsAPIService(apiKey string) *NewsAPIService {
	return &NewsAPIService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://newsapi.org/v2",
	}
}

// NewsAPIResponse represents the response from NewsAPI
type NewsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// GetRecentNews returns recent news items for a symbol, newest first
func (s *NewsAPIService) GetRecentNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest("newsapi", "recent_news")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider("newsapi", "recent_news")

	var items []models.NewsItem
	err := WithRetry(ctx, DefaultRetryConfig, func() error {
		result, err := WithCircuitBreaker(ctx, BreakerNewsAPI, func() ([]models.NewsItem, error) {
			params := url.Values{}
			params.Set("q", symbol)
			params.Set("language", "en")
			params.Set("sortBy", "publishedAt")
			params.Set("pageSize", fmt.Sprintf("%d", limit))

			req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/everything?"+params.Encode(), nil)
			if err != nil {
				return nil, fmt.Errorf("failed to create request: %w", err)
			}
			req.Header.Set("X-Api-Key", s.apiKey)

			resp, err := s.httpClient.Do(req)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch news: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("NewsAPI returned status %d", resp.StatusCode)
			}

			var newsResp NewsAPIResponse
			if err := json.NewDecoder(resp.Body).Decode(&newsResp); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}

			fetched := make([]models.NewsItem, 0, len(newsResp.Articles))
			for _, item := range newsResp.Articles {
				fetched = append(fetched, models.NewsItem{
					Title:   item.Title,
					Summary: item.Description,
				})
			}
			return fetched, nil
		})
		if err != nil {
			return err
		}
		items = result
		return nil
	})
	if err != nil {
		metrics.RecordProviderError("newsapi", "recent_news")
		return nil, err
	}

	return items, nil
}
