package agents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"investment-company/backtest"
	"investment-company/indicators"
	"investment-company/models"
	"investment-company/observability"
)

// MarketDataProvider supplies the three external data operations the
// meeting needs per symbol. Implementations must represent empty or partial
// results (empty news list, nil metrics) rather than failing, wherever
// partial operation is meaningful.
type MarketDataProvider interface {
	GetPriceHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (models.PriceSeries, error)
	GetFundamentals(ctx context.Context, symbol string) (map[string]*float64, error)
	GetRecentNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

// DecisionStore persists decisions produced by a meeting
type DecisionStore interface {
	SaveDecision(ctx context.Context, decision *models.Decision) error
}

// MeetingConfig holds orchestration parameters
type MeetingConfig struct {
	Interval    string        // bar interval passed to the data provider
	NewsLimit   int           // max news items fetched per symbol
	Concurrency int           // max symbols processed at once
	Timeout     time.Duration // per-symbol budget including data retrieval
}

// DefaultMeetingConfig returns the standard orchestration parameters
func DefaultMeetingConfig() MeetingConfig {
	return MeetingConfig{
		Interval:    "1d",
		NewsLimit:   20,
		Concurrency: 4,
		Timeout:     60 * time.Second,
	}
}

// MeetingResult collects per-symbol decisions. Symbols whose data retrieval
// or synthesis failed appear in Failures instead; one symbol's failure never
// aborts the rest of the batch.
type MeetingResult struct {
	Decisions map[string]*models.Decision `json:"decisions"`
	Failures  map[string]string           `json:"failures,omitempty"`
}

// InvestmentMeeting sequences the scoring pipeline per symbol: fetch market
// data, compute indicators, run all agents, synthesize, backtest, collect.
// The agent list is explicit configuration; there is no hidden default set.
type InvestmentMeeting struct {
	provider  MarketDataProvider
	engine    *indicators.Engine
	agents    []Agent
	manager   *PortfolioManager
	evaluator *backtest.Evaluator
	store     DecisionStore
	cfg       MeetingConfig
}

// DefaultAgents returns the standard four-analyst panel
func DefaultAgents() []Agent {
	return []Agent{
		NewTechnicalAnalyst(),
		NewFundamentalAnalyst(),
		NewSentimentAnalyst(),
		NewRiskOfficer(),
	}
}

// NewInvestmentMeeting creates a meeting orchestrator over the given
// provider, agent panel and manager.
func NewInvestmentMeeting(
	provider MarketDataProvider,
	engine *indicators.Engine,
	agentList []Agent,
	manager *PortfolioManager,
	evaluator *backtest.Evaluator,
	cfg MeetingConfig,
) *InvestmentMeeting {
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = 20
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &InvestmentMeeting{
		provider:  provider,
		engine:    engine,
		agents:    agentList,
		manager:   manager,
		evaluator: evaluator,
		cfg:       cfg,
	}
}

// SetDecisionStore enables persistence of synthesized decisions.
// Scoring never depends on the store; save errors are logged, not fatal.
func (m *InvestmentMeeting) SetDecisionStore(store DecisionStore) {
	m.store = store
}

// Agents returns the configured agent panel
func (m *InvestmentMeeting) Agents() []Agent {
	return m.agents
}

// Evaluator returns the configured backtest evaluator
func (m *InvestmentMeeting) Evaluator() *backtest.Evaluator {
	return m.evaluator
}

// Run processes the symbol batch. Symbols fan out up to the configured
// concurrency; per-symbol failures are isolated into the result's Failures
// map rather than aborting the batch.
func (m *InvestmentMeeting) Run(ctx context.Context, symbols []string, start, end time.Time) *MeetingResult {
	result := &MeetingResult{
		Decisions: make(map[string]*models.Decision, len(symbols)),
		Failures:  make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, m.cfg.Concurrency)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			decision, err := m.runSymbol(ctx, symbol, start, end)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures[symbol] = err.Error()
				return
			}
			result.Decisions[symbol] = decision
		}(symbol)
	}
	wg.Wait()

	if len(result.Failures) == 0 {
		result.Failures = nil
	}
	return result
}

func (m *InvestmentMeeting) runSymbol(ctx context.Context, symbol string, start, end time.Time) (*models.Decision, error) {
	metrics := observability.GetMetrics()
	metrics.RecordMeetingSymbol(symbol)
	timer := metrics.NewTimer()

	symbolCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	price, err := m.provider.GetPriceHistory(symbolCtx, symbol, start, end, m.cfg.Interval)
	if err != nil {
		timer.ObserveMeetingSymbol(symbol, "error")
		metrics.RecordMeetingError(symbol, "price_history")
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}
	if len(price) == 0 {
		timer.ObserveMeetingSymbol(symbol, "error")
		metrics.RecordMeetingError(symbol, "empty_history")
		return nil, fmt.Errorf("no price history for %s in requested range", symbol)
	}

	log := observability.WithSymbol(symbol)

	// Fundamentals and news degrade to empty inputs; the affected agents
	// report lower confidence instead of failing the symbol.
	fundamentals, err := m.provider.GetFundamentals(symbolCtx, symbol)
	if err != nil {
		log.Warn("fundamentals unavailable, agents will score without them", "error", err)
		fundamentals = map[string]*float64{}
	}
	news, err := m.provider.GetRecentNews(symbolCtx, symbol, m.cfg.NewsLimit)
	if err != nil {
		log.Warn("news unavailable, sentiment will be neutral", "error", err)
		news = nil
	}

	analysisCtx := &models.AnalysisContext{
		Symbol:       symbol,
		PriceHistory: price,
		Indicators:   m.engine.Compute(price),
		Fundamentals: fundamentals,
		News:         news,
	}

	reports := m.runAgents(analysisCtx)

	decision, err := m.manager.Synthesize(reports, analysisCtx)
	if err != nil {
		timer.ObserveMeetingSymbol(symbol, "error")
		metrics.RecordMeetingError(symbol, "synthesis")
		return nil, fmt.Errorf("failed to synthesize decision: %w", err)
	}

	report := m.evaluator.Evaluate(decision, price)
	decision.Backtest = &report

	if m.store != nil {
		if err := m.store.SaveDecision(ctx, decision); err != nil {
			log.Warn("failed to persist decision", "error", err)
		}
	}

	timer.ObserveMeetingSymbol(symbol, "success")
	action := "hold_cash"
	if len(decision.Orders) > 0 {
		action = string(decision.Orders[0].Action)
	}
	metrics.RecordDecision(action, decision.CompositeScore, decision.BuyWeight())
	return decision, nil
}

// runAgents evaluates the panel in parallel. Agents are mutually
// independent; result order follows the configured panel order.
func (m *InvestmentMeeting) runAgents(analysisCtx *models.AnalysisContext) []models.AgentReport {
	metrics := observability.GetMetrics()
	reports := make([]models.AgentReport, len(m.agents))

	var wg sync.WaitGroup
	for i, agent := range m.agents {
		wg.Add(1)
		go func(idx int, ag Agent) {
			defer wg.Done()
			timer := metrics.NewTimer()
			reports[idx] = ag.Analyze(analysisCtx)
			timer.ObserveAgent(ag.Name())
			metrics.RecordAgentScore(ag.Name(), reports[idx].Score)
			observability.WithAgent(ag.Name()).Debug("agent scored",
				"symbol", analysisCtx.Symbol, "score", reports[idx].Score)
		}(i, agent)
	}
	wg.Wait()

	return reports
}
