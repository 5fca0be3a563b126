package app

import (
	"context"
	"time"

	"investment-company/agents"
	"investment-company/backtest"
	"investment-company/config"
	"investment-company/indicators"
	"investment-company/observability"
	"investment-company/repository"
	"investment-company/services"
)

// App wires the configured data sources, agent panel and persistence into a
// ready-to-run investment meeting. Missing credentials degrade to the
// offline data provider; a missing database disables persistence only.
type App struct {
	cfg     *config.Config
	meeting *agents.InvestmentMeeting
	repo    *repository.Repository
}

// New builds the application from configuration
func New(ctx context.Context, cfg *config.Config) *App {
	a := &App{cfg: cfg}

	var prices services.PriceHistorySource
	if cfg.HasAlpaca() {
		prices = services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret)
	} else {
		observability.Warn("Alpaca credentials not set, price history will be synthetic")
	}

	var fundamentals services.FundamentalsSource
	if cfg.HasAlphaVantage() {
		fundamentals = services.NewAlphaVantageService(cfg.AlphaVantage.APIKey)
	} else {
		observability.Warn("Alpha Vantage API key not set, fundamentals will be synthetic")
	}

	var news services.NewsSource
	if cfg.HasNewsAPI() {
		news = services.NewNewsAPIService(cfg.NewsAPI.APIKey)
	} else {
		observability.Warn("NewsAPI key not set, news will be synthetic")
	}

	provider := services.NewCompositeProvider(prices, fundamentals, news)
	engine := indicators.NewEngine(cfg.Indicator.Windows)

	risk := agents.NewRiskOfficer()
	risk.TargetVolatility = cfg.Agent.TargetVolatility
	risk.MaxWeightPerAsset = cfg.Agent.MaxWeightPerAsset
	risk.MaxSectorExposure = cfg.Agent.MaxSectorExposure

	panel := []agents.Agent{
		agents.NewTechnicalAnalyst(),
		agents.NewFundamentalAnalyst(),
		agents.NewSentimentAnalyst(),
		risk,
	}

	manager := agents.NewPortfolioManager()
	manager.MaxGrossExposure = cfg.Agent.MaxGrossExposure
	manager.MinConfidence = cfg.Agent.MinConfidence

	evaluator := backtest.NewEvaluator(periodsPerYear(cfg))

	a.meeting = agents.NewInvestmentMeeting(provider, engine, panel, manager, evaluator, agents.MeetingConfig{
		Interval:    cfg.Meeting.Interval,
		NewsLimit:   cfg.Meeting.NewsLimit,
		Concurrency: cfg.Meeting.ConcurrencyLimit,
		Timeout:     time.Duration(cfg.Meeting.TimeoutSeconds) * time.Second,
	})

	if cfg.HasDatabase() {
		repo, err := repository.NewRepository(ctx, cfg.Database.URL)
		if err != nil {
			observability.Warn("failed to initialize database, running without persistence",
				"error", err)
		} else if err := repo.EnsureSchema(ctx); err != nil {
			observability.Warn("failed to ensure database schema, running without persistence",
				"error", err)
			repo.Close()
		} else {
			a.repo = repo
			a.meeting.SetDecisionStore(repo)
		}
	}

	return a
}

// periodsPerYear resolves the backtest annualization factor: an explicit
// override wins, otherwise it follows the configured bar interval.
func periodsPerYear(cfg *config.Config) int {
	if cfg.Backtest.PeriodsPerYear > 0 {
		return cfg.Backtest.PeriodsPerYear
	}
	if cfg.Meeting.Interval == "1w" {
		return backtest.WeeklyPeriodsPerYear
	}
	return backtest.DefaultPeriodsPerYear
}

// Meeting returns the wired investment meeting
func (a *App) Meeting() *agents.InvestmentMeeting {
	return a.meeting
}

// Repo returns the decision repository, or nil when no database is configured
func (a *App) Repo() *repository.Repository {
	return a.repo
}

// Close releases application resources
func (a *App) Close() {
	if a.repo != nil {
		a.repo.Close()
	}
}
