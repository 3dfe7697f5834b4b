package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"docreview/internal/domain"
	"docreview/internal/export"
	"docreview/internal/port"
	"docreview/internal/service"
)

// CreateAnalysisRequest is the body of POST /analyse-results.
type CreateAnalysisRequest struct {
	FileID string                 `json:"file_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Result domain.InferenceResult `json:"result" swaggertype:"object"`
}

// AnalysisHandler serves the result store's analysis record endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Create handles POST /analyse-results
// @Summary Store an analysis result
// @Tags analyse-results
// @Accept json
// @Produce json
// @Param request body CreateAnalysisRequest true "Analysis result"
// @Success 201 {object} RecordResponseDoc
// @Failure 400 {object} ErrorResponseBody "file_id or result missing"
// @Failure 500 {object} ErrorResponseBody "Storage failure"
// @Security ApiKeyAuth
// @Router /analyse-results [post]
func (h *AnalysisHandler) Create(c *gin.Context) {
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_id and result are required")
		return
	}

	rec, err := h.analysisService.Create(c.Request.Context(), service.CreateAnalysisInput{
		FileID: req.FileID,
		Result: req.Result,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Analysis result created successfully", "data": rec})
}

// List handles GET /analyse-results
// @Summary List analysis results
// @Description Newest first. Optional file_id filter.
// @Tags analyse-results
// @Produce json
// @Param file_id query string false "Filter by file id"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} ListResponseDoc
// @Failure 400 {object} ErrorResponseBody "Bad paging parameters"
// @Security ApiKeyAuth
// @Router /analyse-results [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		HandleError(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		HandleError(c, err)
		return
	}

	records, err := h.analysisService.List(c.Request.Context(), port.ListFilter{
		FileID: c.Query("file_id"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	if records == nil {
		records = []domain.AnalysisRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
}

// Get handles GET /analyse-results/:id
// @Summary Get an analysis result
// @Tags analyse-results
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} RecordResponseDoc
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security ApiKeyAuth
// @Router /analyse-results/{id} [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	rec, err := h.analysisService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

// Update handles PUT /analyse-results/:id
// @Summary Update an analysis result
// @Description Replaces result and/or file_id.
// @Tags analyse-results
// @Accept json
// @Produce json
// @Param id path string true "Record id"
// @Param request body CreateAnalysisRequest true "Fields to change"
// @Success 200 {object} RecordResponseDoc
// @Failure 400 {object} ErrorResponseBody "No fields to update"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security ApiKeyAuth
// @Router /analyse-results/{id} [put]
func (h *AnalysisHandler) Update(c *gin.Context) {
	var patch domain.AnalysisRecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body is required")
		return
	}

	rec, err := h.analysisService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analysis result updated successfully", "data": rec})
}

// Delete handles DELETE /analyse-results/:id
// @Summary Delete an analysis result
// @Tags analyse-results
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} MessageResponseDoc
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security ApiKeyAuth
// @Router /analyse-results/{id} [delete]
func (h *AnalysisHandler) Delete(c *gin.Context) {
	if err := h.analysisService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analysis result deleted successfully"})
}

// ListByFileID handles GET /results/:file_id
// @Summary List every analysis result for a file
// @Description Answers 404 with an empty list when the file has no results.
// @Tags results
// @Produce json
// @Param file_id path string true "File id"
// @Success 200 {object} FileResultsDoc
// @Failure 404 {object} FileResultsDoc "No results for this file"
// @Security ApiKeyAuth
// @Router /results/{file_id} [get]
func (h *AnalysisHandler) ListByFileID(c *gin.Context) {
	fileID := c.Param("file_id")
	records, err := h.analysisService.ListByFileID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	status := http.StatusOK
	if len(records) == 0 {
		status = http.StatusNotFound
		records = []domain.AnalysisRecord{}
	}
	c.JSON(status, gin.H{"file_id": fileID, "total_results": len(records), "results": records})
}

// Export handles GET /results/:file_id/export
// @Summary Export a file's analysis results
// @Tags results
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file_id path string true "File id"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Security ApiKeyAuth
// @Router /results/{file_id}/export [get]
func (h *AnalysisHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	fileID := c.Param("file_id")
	var buf bytes.Buffer
	if err := h.analysisService.Export(c.Request.Context(), fileID, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(fileID, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("%s must be a non-negative integer", key)
	}
	return n, nil
}
