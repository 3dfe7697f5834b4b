package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/handler"
	"docreview/internal/llm"
	"docreview/internal/port"
	"docreview/internal/service"
	"docreview/mocks"
)

func TestModelHandler_Analyze(t *testing.T) {
	model := new(mocks.MockChatModel)
	h := handler.NewModelHandler(service.NewModelService(model))

	model.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.System == "Summarise" && len(req.Messages) == 2
	})).Return(&port.ChatResponse{Text: "```json\n{\"summary\":\"two pages\"}\n```", Model: "test"}, nil)

	w, c := postJSON(t, "/ai", `{"pages":["one","two"],"prompt":"Summarise"}`)
	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "two pages", resp["summary"])
}

func TestModelHandler_Analyze_MissingPrompt(t *testing.T) {
	model := new(mocks.MockChatModel)
	h := handler.NewModelHandler(service.NewModelService(model))

	w, c := postJSON(t, "/ai", `{"pages":["one"]}`)
	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestModelHandler_Analyze_ProviderFailure(t *testing.T) {
	model := new(mocks.MockChatModel)
	h := handler.NewModelHandler(service.NewModelService(model))
	model.On("Complete", mock.Anything, mock.Anything).
		Return(nil, &llm.ProviderError{Provider: "openai", StatusCode: 401, Body: "bad key"})

	w, c := postJSON(t, "/ai", `{"pages":{"document":[{"page":1,"content":"x"}]},"prompt":"p"}`)
	h.Analyze(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INFERENCE_FAILED", resp.Error.Code)
	assert.Equal(t, 401, resp.Error.Status)
	assert.Equal(t, "bad key", resp.Error.Details)
}

func TestModelHandler_Analyze_NotConfigured(t *testing.T) {
	h := handler.NewModelHandler(service.NewModelService(nil))

	w, c := postJSON(t, "/ai", `{"pages":["one"],"prompt":"p"}`)
	h.Analyze(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "MODEL_NOT_CONFIGURED")
}

func TestModelHandler_Analyze_InvalidJSON(t *testing.T) {
	mockSvc := new(mocks.MockModelService)
	h := handler.NewModelHandler(mockSvc)

	w, c := postJSON(t, "/ai", `{"pages":`)
	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

