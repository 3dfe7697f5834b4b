package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"docreview/internal/domain"
	"docreview/internal/export"
	"docreview/internal/logger"
	"docreview/internal/port"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// CreateAnalysisInput is the DTO for storing a new analysis result.
type CreateAnalysisInput struct {
	FileID string
	Result domain.InferenceResult
}

// AnalysisService defines the analysis record management contract served by
// the result store.
type AnalysisService interface {
	Create(ctx context.Context, input CreateAnalysisInput) (*domain.AnalysisRecord, error)
	GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error)
	List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error)
	ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error)
	Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, fileID string, format domain.ExportFormat, w io.Writer) error
}

type analysisService struct {
	repo port.AnalysisRepository
	now  func() time.Time
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(repo port.AnalysisRepository) AnalysisService {
	return &analysisService{repo: repo, now: time.Now}
}

func (s *analysisService) Create(ctx context.Context, input CreateAnalysisInput) (*domain.AnalysisRecord, error) {
	if strings.TrimSpace(input.FileID) == "" {
		return nil, domain.NewValidationError("file_id is required")
	}
	if input.Result == nil {
		return nil, domain.NewValidationError("result is required")
	}

	rec := &domain.AnalysisRecord{
		ID:        uuid.New().String(),
		FileID:    input.FileID,
		Result:    input.Result,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("file_id", input.FileID).Msg("analysisService.Create: repository create failed")
		return nil, fmt.Errorf("creating analysis result: %w", err)
	}
	logger.FromContext(ctx).Info().Str("id", rec.ID).Str("file_id", rec.FileID).Msg("analysisService.Create: stored")
	return rec, nil
}

func (s *analysisService) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *analysisService) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, domain.NewValidationError("file_id is required")
	}
	return s.repo.ListByFileID(ctx, fileID)
}

func (s *analysisService) Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error) {
	if patch.Empty() {
		return nil, domain.NewValidationError("No valid fields to update")
	}
	if patch.FileID != nil && strings.TrimSpace(*patch.FileID) == "" {
		return nil, domain.NewValidationError("file_id must not be empty")
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FileID != nil {
		rec.FileID = *patch.FileID
	}
	if patch.Result != nil {
		rec.Result = *patch.Result
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating analysis result: %w", err)
	}
	return rec, nil
}

func (s *analysisService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Export writes every record for fileID in the requested format.
func (s *analysisService) Export(ctx context.Context, fileID string, format domain.ExportFormat, w io.Writer) error {
	records, err := s.ListByFileID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("loading records for export: %w", err)
	}
	return export.Write(w, format, records)
}
