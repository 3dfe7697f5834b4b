package port

import (
	"context"

	"docreview/internal/domain"
)

// AnalysisRepository defines the contract for analysis record persistence
// inside the result store service.
type AnalysisRepository interface {
	Create(ctx context.Context, record *domain.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error)
	List(ctx context.Context, filter ListFilter) ([]domain.AnalysisRecord, error)
	ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error)
	Update(ctx context.Context, record *domain.AnalysisRecord) error
	Delete(ctx context.Context, id string) error
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
