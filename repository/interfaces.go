package repository

import (
	"context"

	"github.com/google/uuid"

	"investment-company/models"
)

// DecisionRepository defines all persistence operations for decisions
type DecisionRepository interface {
	// Health and lifecycle
	Close()
	Health(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// Decisions
	SaveDecision(ctx context.Context, decision *models.Decision) error
	GetDecisions(ctx context.Context, symbol string, limit int) ([]DecisionRecord, error)
	GetDecision(ctx context.Context, id uuid.UUID) (*DecisionRecord, error)
}

// Compile-time interface verification
var _ DecisionRepository = (*Repository)(nil)
