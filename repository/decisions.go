package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"investment-company/models"
	"investment-company/observability"
)

// DecisionRecord is a persisted decision with its storage identity
type DecisionRecord struct {
	ID        uuid.UUID       `json:"id"`
	Symbol    string          `json:"symbol"`
	CreatedAt time.Time       `json:"created_at"`
	Decision  models.Decision `json:"decision"`
}

// EnsureSchema creates the decisions table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.checkDB(); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS decisions (
			id UUID PRIMARY KEY,
			symbol TEXT NOT NULL,
			as_of_date DATE,
			composite_score DOUBLE PRECISION NOT NULL,
			max_gross_exposure DOUBLE PRECISION NOT NULL,
			notes TEXT,
			orders JSONB NOT NULL DEFAULT '[]',
			agent_reports JSONB NOT NULL DEFAULT '[]',
			backtest JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS decisions_symbol_created_idx
			ON decisions (symbol, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure decisions schema: %w", err)
	}
	return nil
}

// SaveDecision persists a synthesized decision with its agent reports and
// backtest attached.
func (r *Repository) SaveDecision(ctx context.Context, decision *models.Decision) error {
	if err := r.checkDB(); err != nil {
		return err
	}
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveDB("insert", "decisions")

	ordersJSON, err := json.Marshal(decision.Orders)
	if err != nil {
		metrics.RecordDBError("insert", "decisions")
		return fmt.Errorf("failed to marshal orders: %w", err)
	}
	reportsJSON, err := json.Marshal(decision.AgentReports)
	if err != nil {
		metrics.RecordDBError("insert", "decisions")
		return fmt.Errorf("failed to marshal agent reports: %w", err)
	}

	var backtestJSON []byte
	if decision.Backtest != nil {
		backtestJSON, err = json.Marshal(decision.Backtest)
		if err != nil {
			metrics.RecordDBError("insert", "decisions")
			return fmt.Errorf("failed to marshal backtest report: %w", err)
		}
	}

	var asOfDate any
	if decision.AsOfDate != "" {
		asOfDate = decision.AsOfDate
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO decisions (id, symbol, as_of_date, composite_score, max_gross_exposure,
			notes, orders, agent_reports, backtest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.New(), decision.Symbol, asOfDate, decision.CompositeScore, decision.MaxGrossExposure,
		decision.Notes, ordersJSON, reportsJSON, backtestJSON, time.Now())

	if err != nil {
		metrics.RecordDBError("insert", "decisions")
		return fmt.Errorf("failed to save decision: %w", err)
	}

	return nil
}

// GetDecisions returns persisted decisions, newest first. An empty symbol
// returns decisions across all symbols.
func (r *Repository) GetDecisions(ctx context.Context, symbol string, limit int) ([]DecisionRecord, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveDB("select", "decisions")

	if limit <= 0 {
		limit = 50
	}

	var rows pgx.Rows
	var err error

	if symbol == "" {
		rows, err = r.db.Query(ctx, `
			SELECT id, symbol, as_of_date, composite_score, max_gross_exposure,
				   notes, orders, agent_reports, backtest, created_at
			FROM decisions
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT id, symbol, as_of_date, composite_score, max_gross_exposure,
				   notes, orders, agent_reports, backtest, created_at
			FROM decisions
			WHERE symbol = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, symbol, limit)
	}

	if err != nil {
		metrics.RecordDBError("select", "decisions")
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var records []DecisionRecord
	for rows.Next() {
		record, err := scanDecision(rows)
		if err != nil {
			metrics.RecordDBError("select", "decisions")
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		records = append(records, *record)
	}

	return records, nil
}

// GetDecision returns a single persisted decision by ID, or nil when absent
func (r *Repository) GetDecision(ctx context.Context, id uuid.UUID) (*DecisionRecord, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		SELECT id, symbol, as_of_date, composite_score, max_gross_exposure,
			   notes, orders, agent_reports, backtest, created_at
		FROM decisions WHERE id = $1
	`, id)

	record, err := scanDecision(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query decision: %w", err)
	}

	return record, nil
}

// scanDecision scans a decisions row into a DecisionRecord
func scanDecision(row pgx.Row) (*DecisionRecord, error) {
	var record DecisionRecord
	var asOfDate *time.Time
	var ordersJSON, reportsJSON, backtestJSON []byte

	err := row.Scan(&record.ID, &record.Symbol, &asOfDate,
		&record.Decision.CompositeScore, &record.Decision.MaxGrossExposure,
		&record.Decision.Notes, &ordersJSON, &reportsJSON, &backtestJSON,
		&record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.Decision.Symbol = record.Symbol
	if asOfDate != nil {
		record.Decision.AsOfDate = asOfDate.Format("2006-01-02")
	}

	if len(ordersJSON) > 0 {
		if err := json.Unmarshal(ordersJSON, &record.Decision.Orders); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
		}
	}
	if len(reportsJSON) > 0 {
		if err := json.Unmarshal(reportsJSON, &record.Decision.AgentReports); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agent reports: %w", err)
		}
	}
	if len(backtestJSON) > 0 {
		var backtest models.BacktestReport
		if err := json.Unmarshal(backtestJSON, &backtest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal backtest report: %w", err)
		}
		record.Decision.Backtest = &backtest
	}

	return &record, nil
}
