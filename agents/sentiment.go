package agents

import (
	"fmt"
	"math"
	"strings"

	"investment-company/models"
)

// Process-wide constant sentiment vocabularies. Initialized once and never
// mutated; keyword matching is whole-token, case-insensitive.
var (
	positiveKeywords = keywordSet(
		"beats", "growth", "surge", "outperform",
		"bullish", "upgrade", "strong", "record",
	)
	negativeKeywords = keywordSet(
		"miss", "decline", "drop", "lawsuit", "bearish",
		"downgrade", "weak", "fraud", "risk",
	)
)

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SentimentAnalyst scores news flow by counting sentiment keywords per item
// and compressing the average per-item score through tanh.
type SentimentAnalyst struct{}

// NewSentimentAnalyst creates a new SentimentAnalyst
func NewSentimentAnalyst() *SentimentAnalyst {
	return &SentimentAnalyst{}
}

// Name returns the agent name
func (a *SentimentAnalyst) Name() string {
	return SentimentAnalystName
}

// Analyze scores the context's news items. An empty list, or items with no
// usable text, yield a neutral "no recent news" report.
func (a *SentimentAnalyst) Analyze(ctx *models.AnalysisContext) models.AgentReport {
	if len(ctx.News) == 0 {
		return models.AgentReport{
			AgentName: a.Name(),
			Symbol:    ctx.Symbol,
			Score:     0,
			Rationale: "No recent news",
			Metadata:  map[string]interface{}{"news_count": 0},
		}
	}

	var scores []float64
	var processed []map[string]interface{}
	for _, item := range ctx.News {
		combined := strings.TrimSpace(item.Title + " " + item.Summary)
		if combined == "" {
			continue
		}
		score := scoreHeadline(combined)
		scores = append(scores, score)
		processed = append(processed, map[string]interface{}{
			"title": item.Title,
			"score": score,
		})
	}

	if len(scores) == 0 {
		return models.AgentReport{
			AgentName: a.Name(),
			Symbol:    ctx.Symbol,
			Score:     0,
			Rationale: "No recent news",
			Metadata:  map[string]interface{}{"news_count": 0},
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := math.Tanh(sum / float64(len(scores)))

	return models.AgentReport{
		AgentName: a.Name(),
		Symbol:    ctx.Symbol,
		Score:     avg,
		Rationale: fmt.Sprintf("Average sentiment score %.2f based on %d articles", avg, len(processed)),
		Metadata:  map[string]interface{}{"articles": processed},
	}
}

// scoreHeadline counts positive and negative keyword hits in the text and
// returns their normalized difference in [-1, 1]; 0 when no keyword fires.
func scoreHeadline(text string) float64 {
	var posHits, negHits int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positiveKeywords[word]; ok {
			posHits++
		}
		if _, ok := negativeKeywords[word]; ok {
			negHits++
		}
	}
	if posHits == 0 && negHits == 0 {
		return 0
	}
	total := posHits + negHits
	if total < 1 {
		total = 1
	}
	return float64(posHits-negHits) / float64(total)
}
