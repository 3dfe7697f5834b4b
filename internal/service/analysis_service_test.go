package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/export"
	"docreview/internal/port"
	"docreview/internal/service"
	"docreview/mocks"
)

func setupAnalysisService() (service.AnalysisService, *mocks.MockAnalysisRepo) {
	repo := new(mocks.MockAnalysisRepo)
	return service.NewAnalysisService(repo), repo
}

func TestAnalysisService_Create(t *testing.T) {
	svc, repo := setupAnalysisService()
	ctx := context.Background()
	result := domain.InferenceResult{"summary": "x"}

	repo.On("Create", ctx, mock.MatchedBy(func(r *domain.AnalysisRecord) bool {
		return r.ID != "" && r.FileID == "file-1" && !r.CreatedAt.IsZero()
	})).Return(nil)

	rec, err := svc.Create(ctx, service.CreateAnalysisInput{FileID: "file-1", Result: result})

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, result, rec.Result)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Create_Validation(t *testing.T) {
	svc, repo := setupAnalysisService()

	_, err := svc.Create(context.Background(), service.CreateAnalysisInput{Result: domain.InferenceResult{}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), service.CreateAnalysisInput{FileID: "f"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Create_RepoError(t *testing.T) {
	svc, repo := setupAnalysisService()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), service.CreateAnalysisInput{FileID: "f", Result: domain.InferenceResult{}})

	assert.ErrorContains(t, err, "connection refused")
}

func TestAnalysisService_List_AppliesDefaultsAndCap(t *testing.T) {
	svc, repo := setupAnalysisService()
	ctx := context.Background()

	repo.On("List", ctx, port.ListFilter{Limit: 50}).Return([]domain.AnalysisRecord{}, nil).Once()
	repo.On("List", ctx, port.ListFilter{FileID: "f", Limit: 500, Offset: 0}).Return([]domain.AnalysisRecord{{ID: "a"}}, nil).Once()

	_, err := svc.List(ctx, port.ListFilter{})
	require.NoError(t, err)

	recs, err := svc.List(ctx, port.ListFilter{FileID: "f", Limit: 10000, Offset: -3})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Update(t *testing.T) {
	svc, repo := setupAnalysisService()
	ctx := context.Background()
	existing := &domain.AnalysisRecord{ID: "rec-1", FileID: "old", Result: domain.InferenceResult{"v": 1}}
	newResult := domain.InferenceResult{"v": 2}

	repo.On("GetByID", ctx, "rec-1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(r *domain.AnalysisRecord) bool {
		return r.FileID == "old" && r.Result["v"] == 2
	})).Return(nil)

	rec, err := svc.Update(ctx, "rec-1", domain.AnalysisRecordPatch{Result: &newResult})

	require.NoError(t, err)
	assert.Equal(t, newResult, rec.Result)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Update_EmptyPatch(t *testing.T) {
	svc, repo := setupAnalysisService()

	_, err := svc.Update(context.Background(), "rec-1", domain.AnalysisRecordPatch{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAnalysisService_Update_NotFound(t *testing.T) {
	svc, repo := setupAnalysisService()
	fileID := "new"
	repo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), "missing", domain.AnalysisRecordPatch{FileID: &fileID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAnalysisService_Delete_NotFound(t *testing.T) {
	svc, repo := setupAnalysisService()
	repo.On("Delete", mock.Anything, "missing").Return(domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestAnalysisService_Export_CSV(t *testing.T) {
	svc, repo := setupAnalysisService()
	repo.On("ListByFileID", mock.Anything, "file-1").Return([]domain.AnalysisRecord{
		{ID: "rec-1", FileID: "file-1", Result: domain.InferenceResult{"summary": "fine"}},
	}, nil)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), "file-1", domain.ExportCSV, &buf)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), export.BOM))
	assert.Contains(t, buf.String(), "rec-1,file-1,,fine")
}

func TestAnalysisService_Export_RepoError(t *testing.T) {
	svc, repo := setupAnalysisService()
	repo.On("ListByFileID", mock.Anything, "file-1").Return(nil, errors.New("timeout"))

	err := svc.Export(context.Background(), "file-1", domain.ExportXLSX, &bytes.Buffer{})

	assert.ErrorContains(t, err, "timeout")
}
