package service

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"docreview/internal/domain"
	"docreview/internal/logger"
	"docreview/internal/port"
)

// ReviewInput is the DTO for a single-document review.
type ReviewInput struct {
	FileID string
	Pages  domain.PageList
}

// ReviewOutcome is the result of a review that got past inference.
type ReviewOutcome struct {
	State    domain.ReviewState
	Envelope domain.Envelope
}

// ReviewService defines the single-document review contract.
type ReviewService interface {
	Review(ctx context.Context, input ReviewInput) (*ReviewOutcome, error)
}

type reviewService struct {
	inferencer port.Inferencer
	store      port.ResultStore
	prompt     string
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(inferencer port.Inferencer, store port.ResultStore, prompt string) ReviewService {
	return &reviewService{
		inferencer: inferencer,
		store:      store,
		prompt:     prompt,
	}
}

// Review runs infer then persist. A failed persist is reported inside the
// envelope and does not fail the review.
func (s *reviewService) Review(ctx context.Context, input ReviewInput) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx)

	if err := s.validate(input); err != nil {
		return nil, err
	}

	log.Info().Str("file_id", input.FileID).Int("pages", len(input.Pages)).Msg("reviewService.Review: calling inference")
	result, err := s.inferencer.Infer(ctx, domain.PageSet{domain.SlotDocument: input.Pages}, s.prompt)
	if err != nil {
		log.Error().Err(err).Str("file_id", input.FileID).Msg("reviewService.Review: inference failed")
		return nil, err
	}

	meta := domain.Envelope{
		domain.KeyFileID:     input.FileID,
		domain.KeyDocumentID: input.FileID,
	}

	record, err := s.store.Save(ctx, input.FileID, result)
	if err != nil {
		log.Warn().Err(err).Str("file_id", input.FileID).Msg("reviewService.Review: saving result failed, returning unsaved analysis")
		meta[domain.KeySavedToDatabase] = false
		meta[domain.KeySaveError] = err.Error()
		return &ReviewOutcome{
			State:    domain.ReviewCompletedUnpersisted,
			Envelope: lo.Assign(domain.Envelope(result), meta),
		}, nil
	}

	log.Info().Str("file_id", input.FileID).Str("analysis_result_id", record.ID).Msg("reviewService.Review: result saved")
	meta[domain.KeyAnalysisResultID] = record.ID
	meta[domain.KeySavedToDatabase] = true
	return &ReviewOutcome{
		State:    domain.ReviewCompletedPersisted,
		Envelope: lo.Assign(domain.Envelope(result), meta),
	}, nil
}

func (s *reviewService) validate(input ReviewInput) error {
	if len(input.Pages) == 0 {
		return domain.NewValidationError("No pages provided")
	}
	for _, p := range input.Pages {
		if strings.TrimSpace(p.Content) == "" {
			return domain.NewValidationError("page %d has no content", p.Page)
		}
	}
	if strings.TrimSpace(input.FileID) == "" {
		return domain.NewValidationError("file_id is required")
	}
	if strings.TrimSpace(s.prompt) == "" {
		return domain.NewValidationError("review prompt is not configured")
	}
	return nil
}
