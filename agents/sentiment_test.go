package agents

import (
	"math"
	"strings"
	"testing"

	"investment-company/models"
)

func TestSentimentAnalyst_NoNews(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{Symbol: "AAPL"})

	if report.Score != 0 {
		t.Errorf("expected score 0, got %v", report.Score)
	}
	if report.Rationale != "No recent news" {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
	if count, _ := report.Metadata["news_count"].(int); count != 0 {
		t.Errorf("expected news_count 0, got %v", report.Metadata["news_count"])
	}
}

func TestSentimentAnalyst_BlankItemsTreatedAsNoNews(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		News: []models.NewsItem{
			{Title: "   ", Summary: ""},
			{Title: "", Summary: "  "},
		},
	})

	if report.Score != 0 || report.Rationale != "No recent news" {
		t.Errorf("expected neutral no-news report, got score=%v rationale=%q",
			report.Score, report.Rationale)
	}
}

func TestSentimentAnalyst_PositiveHeadline(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		News: []models.NewsItem{
			{Title: "Company beats expectations with record growth"},
		},
	})

	// 3 positive hits, 0 negative: per-item score 1, aggregate tanh(1)
	if !approxEq(report.Score, math.Tanh(1), 1e-9) {
		t.Errorf("expected score tanh(1)=%v, got %v", math.Tanh(1), report.Score)
	}
	if !strings.Contains(report.Rationale, "based on 1 articles") {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
}

func TestSentimentAnalyst_MixedHeadlinesCancel(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		News: []models.NewsItem{
			{Title: "Earnings beats estimates"},
			{Title: "Company faces lawsuit risk"},
		},
	})

	// Per-item scores +1 and -1 average to 0; tanh(0) = 0.
	if !approxEq(report.Score, 0, 1e-9) {
		t.Errorf("expected score 0, got %v", report.Score)
	}
	articles, _ := report.Metadata["articles"].([]map[string]interface{})
	if len(articles) != 2 {
		t.Fatalf("expected 2 scored articles, got %d", len(articles))
	}
}

func TestSentimentAnalyst_CaseInsensitiveMatching(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		News: []models.NewsItem{
			{Title: "BULLISH Upgrade From Analysts"},
		},
	})

	if report.Score <= 0 {
		t.Errorf("expected positive score for uppercase keywords, got %v", report.Score)
	}
}

func TestSentimentAnalyst_NeutralHeadlineScoresZero(t *testing.T) {
	analyst := NewSentimentAnalyst()

	report := analyst.Analyze(&models.AnalysisContext{
		Symbol: "AAPL",
		News: []models.NewsItem{
			{Title: "Quarterly report published on schedule"},
		},
	})

	if report.Score != 0 {
		t.Errorf("expected score 0 when no keyword fires, got %v", report.Score)
	}
	if !strings.Contains(report.Rationale, "Average sentiment score") {
		t.Errorf("unexpected rationale: %q", report.Rationale)
	}
}

func TestScoreHeadline_PartialTokensDoNotMatch(t *testing.T) {
	// Whole-token matching: "risky" must not hit the "risk" keyword.
	if got := scoreHeadline("a risky outlook"); got != 0 {
		t.Errorf("expected 0 for partial token, got %v", got)
	}
	if got := scoreHeadline("growth offsets risk"); !approxEq(got, 0, 1e-9) {
		t.Errorf("expected balanced hits to cancel, got %v", got)
	}
}
