package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/handler"
	"docreview/internal/service"
	"docreview/mocks"
)

func postJSON(t *testing.T, path, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestReviewHandler_Review_Persisted(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)

	input := service.ReviewInput{
		FileID: "file-1",
		Pages:  domain.PageList{{Page: 1, Content: "first"}, {Page: 2, Content: "second"}},
	}
	mockSvc.On("Review", mock.Anything, input).Return(&service.ReviewOutcome{
		State: domain.ReviewCompletedPersisted,
		Envelope: domain.Envelope{
			"summary":                  "ok",
			domain.KeyAnalysisResultID: "rec-1",
			domain.KeySavedToDatabase:  true,
		},
	}, nil)

	w, c := postJSON(t, "/api/v1/review", `{"file_id":"file-1","pages":["first","second"]}`)
	h.Review(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed-persisted", w.Header().Get("X-Review-State"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["summary"])
	assert.Equal(t, "rec-1", resp["analysis_result_id"])
	assert.Equal(t, true, resp["saved_to_database"])
	assert.NotContains(t, resp, "success", "orchestrator envelope is returned flat")
	mockSvc.AssertExpectations(t)
}

func TestReviewHandler_Review_StoreFailureIs200(t *testing.T) {
	inferencer := new(mocks.MockInferencer)
	store := new(mocks.MockResultStore)
	h := handler.NewReviewHandler(service.NewReviewService(inferencer, store, "prompt"))

	inferencer.On("Infer", mock.Anything, mock.Anything, "prompt").Return(domain.InferenceResult{"summary": "ok"}, nil)
	store.On("Save", mock.Anything, "file-1", mock.Anything).
		Return(nil, &domain.UpstreamError{Service: "result-store", Kind: domain.ErrStoreFailed, StatusCode: 500, Body: "insert failed"})

	w, c := postJSON(t, "/api/v1/review", `{"file_id":"file-1","pages":[{"page":1,"content":"text"}]}`)
	h.Review(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["saved_to_database"])
	assert.NotEmpty(t, resp["save_error"])
	assert.Equal(t, "ok", resp["summary"])
	assert.Equal(t, "completed-unpersisted", w.Header().Get("X-Review-State"))
}

func TestReviewHandler_Review_EmptyPagesMakesNoRemoteCalls(t *testing.T) {
	inferencer := new(mocks.MockInferencer)
	store := new(mocks.MockResultStore)
	h := handler.NewReviewHandler(service.NewReviewService(inferencer, store, "prompt"))

	w, c := postJSON(t, "/api/v1/review", `{"file_id":"file-1","pages":[]}`)
	h.Review(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "No pages provided", resp.Error.Message)
	inferencer.AssertNotCalled(t, "Infer", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_Review_InferenceFailure(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)
	mockSvc.On("Review", mock.Anything, mock.Anything).Return(nil, &domain.UpstreamError{
		Service: "inference", Kind: domain.ErrInferenceFailed, StatusCode: 500, Body: "model exploded",
	})

	w, c := postJSON(t, "/api/v1/review", `{"file_id":"f","pages":["x"]}`)
	h.Review(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INFERENCE_FAILED", resp.Error.Code)
	assert.Equal(t, 500, resp.Error.Status)
	assert.Equal(t, "model exploded", resp.Error.Details)
}

func TestReviewHandler_Review_MalformedBody(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)

	for _, body := range []string{`not json`, `{"pages":"one page"}`, `{"pages":[1,2]}`} {
		w, c := postJSON(t, "/api/v1/review", body)
		h.Review(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	mockSvc.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
}
