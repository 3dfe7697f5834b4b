package port

import (
	"context"

	"docreview/internal/domain"
)

// Scanner extracts text from a raw document.
type Scanner interface {
	Scan(ctx context.Context, doc domain.DocumentPayload) (*domain.ScanResult, error)
}

// Inferencer sends page text and a prompt to the model collaborator.
type Inferencer interface {
	Infer(ctx context.Context, pages domain.PageSet, prompt string) (domain.InferenceResult, error)
}

// ListFilter narrows a record listing. Zero FileID means all files.
type ListFilter struct {
	FileID string
	Limit  int
	Offset int
}

// ResultStore persists and retrieves analysis records held by the store
// collaborator.
type ResultStore interface {
	Save(ctx context.Context, fileID string, result domain.InferenceResult) (*domain.AnalysisRecord, error)
	Get(ctx context.Context, id string) (*domain.AnalysisRecord, error)
	List(ctx context.Context, filter ListFilter) ([]domain.AnalysisRecord, error)
	ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error)
	Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error)
	Delete(ctx context.Context, id string) error
}
