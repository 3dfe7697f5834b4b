package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/domain"
	"docreview/internal/service"
)

// ReviewRequest is the body of POST /api/v1/review. Pages may be bare strings
// or {"page","content"} objects.
type ReviewRequest struct {
	FileID string          `json:"file_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Pages  domain.PageList `json:"pages" swaggertype:"array,object"`
}

// ReviewHandler handles single-document review requests.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Review handles POST /api/v1/review
// @Summary Review a document
// @Description Runs the review prompt over the supplied pages and stores the result.
// @Description A failed store is reported with saved_to_database=false and save_error; the status stays 200.
// @Tags review
// @Accept json
// @Produce json
// @Param request body ReviewRequest true "Document pages"
// @Success 200 {object} ReviewEnvelopeDoc "Model output with review metadata merged in"
// @Failure 400 {object} ErrorResponseBody "Missing pages or file_id"
// @Failure 502 {object} ErrorResponseBody "Model collaborator failed"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /review [post]
func (h *ReviewHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON with file_id and pages")
		return
	}

	outcome, err := h.reviewService.Review(c.Request.Context(), service.ReviewInput{
		FileID: req.FileID,
		Pages:  req.Pages,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("X-Review-State", string(outcome.State))
	c.JSON(http.StatusOK, outcome.Envelope)
}
