package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/domain"
	"docreview/internal/logger"
)

// APIResponse is the standard envelope for non-orchestrator responses and for
// every error.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Status and Details echo a
// collaborator's answer when one was received.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var valErr *domain.ValidationError
	var extErr *domain.ExtractionError
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest, "VALIDATION_ERROR", valErr.Message
	case errors.As(err, &extErr):
		return http.StatusBadRequest, "EMPTY_EXTRACTION", extErr.Error()
	case errors.Is(err, domain.ErrEmptyExtraction):
		return http.StatusBadRequest, "EMPTY_EXTRACTION", "no text could be extracted from the document"
	case errors.Is(err, domain.ErrIdentityMissing):
		return http.StatusBadRequest, "IDENTITY_MISSING", "Unable to identify user"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrScanFailed):
		return http.StatusBadGateway, "SCAN_FAILED", "document scanner request failed"
	case errors.Is(err, domain.ErrInvalidInferenceResponse):
		return http.StatusBadGateway, "INVALID_INFERENCE_RESPONSE", "model returned an unusable response"
	case errors.Is(err, domain.ErrInferenceFailed):
		return http.StatusBadGateway, "INFERENCE_FAILED", "AI-model request failed"
	case errors.Is(err, domain.ErrStoreFailed):
		return http.StatusBadGateway, "STORE_FAILED", "result store request failed"
	case errors.Is(err, domain.ErrModelNotConfigured):
		return http.StatusInternalServerError, "MODEL_NOT_CONFIGURED", "model provider is not configured"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Upstream failures carry the collaborator's status and body.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	apiErr := &APIError{Code: code, Message: msg}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode != 0 {
		apiErr.Status = upErr.StatusCode
		apiErr.Details = upErr.Body
	}

	log := logger.FromContext(c.Request.Context())
	if status >= 500 {
		log.Error().Err(err).Int("status", status).Str("code", code).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Str("code", code).Msg("request rejected")
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
