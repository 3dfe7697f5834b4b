package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/service"
)

// AnalyzeRequest is the body of POST /ai.
type AnalyzeRequest struct {
	Pages  json.RawMessage `json:"pages" swaggertype:"object"`
	Prompt string          `json:"prompt" example:"Summarise the document as JSON"`
}

// ModelHandler serves the model gateway.
type ModelHandler struct {
	modelService service.ModelService
}

// NewModelHandler creates a new ModelHandler.
func NewModelHandler(modelService service.ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

// Analyze handles POST /ai
// @Summary Run a prompt over document pages
// @Description pages is a slot→pages mapping or a list of page strings, page objects or slot mappings.
// @Description The response is the model's JSON object, or {"analysis": text} when the model did not answer in JSON.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Pages and prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponseBody "Missing pages or prompt"
// @Failure 502 {object} ErrorResponseBody "Provider request failed"
// @Failure 500 {object} ErrorResponseBody "Provider not configured"
// @Security ApiKeyAuth
// @Router /ai [post]
func (h *ModelHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON in request body")
		return
	}

	result, err := h.modelService.Analyze(c.Request.Context(), service.AnalyzeInput{
		Pages:  req.Pages,
		Prompt: req.Prompt,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
