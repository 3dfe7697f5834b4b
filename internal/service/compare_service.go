package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"docreview/internal/domain"
	"docreview/internal/logger"
	"docreview/internal/port"
)

// CompareInput is the DTO for a two-document comparison.
type CompareInput struct {
	UserID    string
	ContractA domain.DocumentPayload
	ContractB domain.DocumentPayload
}

// CompareService defines the two-document comparison contract.
type CompareService interface {
	Compare(ctx context.Context, input CompareInput) (domain.Envelope, error)
}

type compareService struct {
	scanner    port.Scanner
	inferencer port.Inferencer
	prompt     string
	now        func() time.Time
}

// NewCompareService creates a new CompareService implementation.
func NewCompareService(scanner port.Scanner, inferencer port.Inferencer, prompt string) CompareService {
	return NewCompareServiceWithClock(scanner, inferencer, prompt, time.Now)
}

// NewCompareServiceWithClock creates a CompareService that stamps results
// using now. Used for testing.
func NewCompareServiceWithClock(scanner port.Scanner, inferencer port.Inferencer, prompt string, now func() time.Time) CompareService {
	return &compareService{
		scanner:    scanner,
		inferencer: inferencer,
		prompt:     prompt,
		now:        now,
	}
}

// Compare scans both contracts concurrently, runs a single inference over
// both texts and enriches the result. Nothing is persisted.
func (s *compareService) Compare(ctx context.Context, input CompareInput) (domain.Envelope, error) {
	log := logger.FromContext(ctx)

	if err := s.validate(input); err != nil {
		return nil, err
	}

	var textA, textB string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		textA, err = s.scan(gctx, domain.SlotContractA, input.ContractA)
		return err
	})
	g.Go(func() error {
		var err error
		textB, err = s.scan(gctx, domain.SlotContractB, input.ContractB)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("compareService.Compare: scan failed")
		return nil, err
	}

	log.Info().Int("contractA_len", len(textA)).Int("contractB_len", len(textB)).Msg("compareService.Compare: calling inference")
	pages := domain.PageSet{
		domain.SlotContractA: {{Page: 1, Content: textA}},
		domain.SlotContractB: {{Page: 1, Content: textB}},
	}
	result, err := s.inferencer.Infer(ctx, pages, s.prompt)
	if err != nil {
		log.Error().Err(err).Msg("compareService.Compare: inference failed")
		return nil, err
	}

	return lo.Assign(domain.Envelope(result), domain.Envelope{
		domain.KeyContractAFilename:   input.ContractA.Filename,
		domain.KeyContractBFilename:   input.ContractB.Filename,
		domain.KeyUserUUID:            input.UserID,
		domain.KeyComparisonTimestamp: s.now().UTC().Format(time.RFC3339),
	}), nil
}

func (s *compareService) scan(ctx context.Context, slot string, doc domain.DocumentPayload) (string, error) {
	res, err := s.scanner.Scan(ctx, doc)
	if errors.Is(err, domain.ErrEmptyExtraction) {
		return "", &domain.ExtractionError{Document: slot}
	}
	if err != nil {
		return "", err
	}
	if res == nil || strings.TrimSpace(res.Text) == "" {
		return "", &domain.ExtractionError{Document: slot}
	}
	return res.Text, nil
}

func (s *compareService) validate(input CompareInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return domain.ErrIdentityMissing
	}
	docs := []struct {
		slot string
		doc  domain.DocumentPayload
	}{
		{domain.SlotContractA, input.ContractA},
		{domain.SlotContractB, input.ContractB},
	}
	for _, d := range docs {
		if d.doc.Filename == "" {
			return domain.NewValidationError("%s file is required", d.slot)
		}
		if len(d.doc.Content) == 0 {
			return domain.NewValidationError("%s file is empty", d.slot)
		}
	}
	if strings.TrimSpace(s.prompt) == "" {
		return domain.NewValidationError("compare prompt is not configured")
	}
	return nil
}
