package handler

import "docreview/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation; handlers
// return maps with the same shape.

// ErrorResponseBody represents an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// ReviewEnvelopeDoc shows the keys merged into a review result. The model's
// own keys appear alongside them.
type ReviewEnvelopeDoc struct {
	AnalysisResultID string `json:"analysis_result_id,omitempty" example:"3f1a9a52-3c1e-4d0e-9d7b-0b8d64f7f0a1"`
	FileID           string `json:"file_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	DocumentID       string `json:"document_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	SavedToDatabase  bool   `json:"saved_to_database" example:"true"`
	SaveError        string `json:"save_error,omitempty" example:"result store returned status 500"`
}

// CompareEnvelopeDoc shows the keys merged into a comparison result.
type CompareEnvelopeDoc struct {
	ContractAFilename   string `json:"contractA_filename" example:"msa_v1.pdf"`
	ContractBFilename   string `json:"contractB_filename" example:"msa_v2.pdf"`
	UserUUID            string `json:"user_uuid" example:"5b0f2d7e-4d1c-4c53-a1a4-8f7c8a9d2e11"`
	ComparisonTimestamp string `json:"comparison_timestamp" example:"2026-05-01T07:00:00Z"`
}

// RecordResponseDoc wraps a single analysis record.
type RecordResponseDoc struct {
	Message string                `json:"message,omitempty" example:"Analysis result created successfully"`
	Data    domain.AnalysisRecord `json:"data"`
}

// ListResponseDoc wraps a page of analysis records.
type ListResponseDoc struct {
	Data  []domain.AnalysisRecord `json:"data"`
	Count int                     `json:"count" example:"1"`
}

// FileResultsDoc lists every record for one file.
type FileResultsDoc struct {
	FileID       string                  `json:"file_id"`
	TotalResults int                     `json:"total_results" example:"1"`
	Results      []domain.AnalysisRecord `json:"results"`
}

// MessageResponseDoc is a bare confirmation message.
type MessageResponseDoc struct {
	Message string `json:"message" example:"Analysis result deleted successfully"`
}
