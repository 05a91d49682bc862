// Package store persists scored assessments. Two backends exist: SQLite for
// local CLI use and Postgres for shared deployments, both behind the Store
// interface.
package store

import (
	"context"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// AssessmentFilter specifies criteria for listing assessments.
type AssessmentFilter struct {
	PolicyID  string          `json:"policy_id,omitempty"`
	RiskLevel model.RiskLevel `json:"risk_level,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Offset    int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessments.
type Store interface {
	// SaveAssessment inserts a new assessment row. The caller supplies
	// everything except ID and CreatedAt, which are assigned here.
	SaveAssessment(ctx context.Context, a model.Assessment) (*model.Assessment, error)
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error)
	DeleteAssessment(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// BulkSaver is the optional bulk insert path. The Postgres backend
// implements it over COPY; callers fall back to row-at-a-time saves when
// the store does not.
type BulkSaver interface {
	SaveAssessmentsBulk(ctx context.Context, assessments []model.Assessment) (int64, error)
}
