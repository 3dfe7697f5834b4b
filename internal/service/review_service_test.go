package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/service"
	"docreview/mocks"
)

const reviewPrompt = "review this document"

func setupReviewService() (service.ReviewService, *mocks.MockInferencer, *mocks.MockResultStore) {
	inferencer := new(mocks.MockInferencer)
	store := new(mocks.MockResultStore)
	return service.NewReviewService(inferencer, store, reviewPrompt), inferencer, store
}

func reviewPages() domain.PageList {
	return domain.PageList{
		{Page: 1, Content: "This agreement is made between..."},
		{Page: 2, Content: "Termination: either party may..."},
	}
}

func TestReviewService_Review_Persisted(t *testing.T) {
	svc, inferencer, store := setupReviewService()
	ctx := context.Background()
	pages := reviewPages()
	result := domain.InferenceResult{"summary": "standard NDA", "risks": []interface{}{"none"}}

	inferencer.On("Infer", ctx, domain.PageSet{domain.SlotDocument: pages}, reviewPrompt).Return(result, nil)
	store.On("Save", ctx, "file-42", result).Return(&domain.AnalysisRecord{ID: "rec-7", FileID: "file-42", Result: result}, nil)

	out, err := svc.Review(ctx, service.ReviewInput{FileID: "file-42", Pages: pages})

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewCompletedPersisted, out.State)
	assert.Equal(t, "standard NDA", out.Envelope["summary"])
	assert.Equal(t, "rec-7", out.Envelope[domain.KeyAnalysisResultID])
	assert.Equal(t, "file-42", out.Envelope[domain.KeyFileID])
	assert.Equal(t, "file-42", out.Envelope[domain.KeyDocumentID])
	assert.Equal(t, true, out.Envelope[domain.KeySavedToDatabase])
	assert.NotContains(t, out.Envelope, domain.KeySaveError)
	assert.NotContains(t, result, domain.KeySavedToDatabase, "inference result must not be mutated")
	inferencer.AssertNumberOfCalls(t, "Infer", 1)
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestReviewService_Review_StoreFailureStillSucceeds(t *testing.T) {
	svc, inferencer, store := setupReviewService()
	ctx := context.Background()
	result := domain.InferenceResult{"summary": "ok"}

	inferencer.On("Infer", ctx, mock.Anything, reviewPrompt).Return(result, nil)
	store.On("Save", ctx, "file-1", result).Return(nil, &domain.UpstreamError{
		Service: "result-store", Kind: domain.ErrStoreFailed, StatusCode: 500, Body: "db down",
	})

	out, err := svc.Review(ctx, service.ReviewInput{FileID: "file-1", Pages: reviewPages()})

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewCompletedUnpersisted, out.State)
	assert.Equal(t, false, out.Envelope[domain.KeySavedToDatabase])
	assert.NotEmpty(t, out.Envelope[domain.KeySaveError])
	assert.Contains(t, out.Envelope[domain.KeySaveError], "db down")
	assert.NotContains(t, out.Envelope, domain.KeyAnalysisResultID)
	assert.Equal(t, "ok", out.Envelope["summary"])
	assert.Equal(t, "file-1", out.Envelope[domain.KeyFileID])
}

func TestReviewService_Review_InferenceFailureSkipsStore(t *testing.T) {
	svc, inferencer, store := setupReviewService()
	ctx := context.Background()
	upErr := &domain.UpstreamError{Service: "inference", Kind: domain.ErrInferenceFailed, StatusCode: 502, Body: "bad gateway"}

	inferencer.On("Infer", ctx, mock.Anything, reviewPrompt).Return(nil, upErr)

	out, err := svc.Review(ctx, service.ReviewInput{FileID: "file-1", Pages: reviewPages()})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInferenceFailed)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Review_ValidationMakesNoCalls(t *testing.T) {
	cases := []struct {
		name  string
		input service.ReviewInput
	}{
		{"empty pages", service.ReviewInput{FileID: "file-1", Pages: domain.PageList{}}},
		{"nil pages", service.ReviewInput{FileID: "file-1"}},
		{"blank page", service.ReviewInput{FileID: "file-1", Pages: domain.PageList{{Page: 1, Content: "  "}}}},
		{"missing file id", service.ReviewInput{Pages: reviewPages()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, inferencer, store := setupReviewService()

			out, err := svc.Review(context.Background(), tc.input)

			assert.Nil(t, out)
			var valErr *domain.ValidationError
			assert.True(t, errors.As(err, &valErr))
			inferencer.AssertNotCalled(t, "Infer", mock.Anything, mock.Anything, mock.Anything)
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReviewService_Review_EmptyPrompt(t *testing.T) {
	inferencer := new(mocks.MockInferencer)
	store := new(mocks.MockResultStore)
	svc := service.NewReviewService(inferencer, store, "")

	_, err := svc.Review(context.Background(), service.ReviewInput{FileID: "f", Pages: reviewPages()})

	assert.ErrorIs(t, err, domain.ErrValidation)
	inferencer.AssertNotCalled(t, "Infer", mock.Anything, mock.Anything, mock.Anything)
}
