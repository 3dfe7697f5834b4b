package domain

// Slot names used in inference page sets.
const (
	SlotDocument  = "document"
	SlotContractA = "contractA"
	SlotContractB = "contractB"
)

// ReviewState is the terminal state of a successful review run. Failed runs
// are reported through errors instead.
type ReviewState string

const (
	ReviewCompletedPersisted   ReviewState = "completed-persisted"
	ReviewCompletedUnpersisted ReviewState = "completed-unpersisted"
)

// Envelope keys added by the review orchestrator.
const (
	KeyAnalysisResultID = "analysis_result_id"
	KeyFileID           = "file_id"
	KeyDocumentID       = "document_id"
	KeySavedToDatabase  = "saved_to_database"
	KeySaveError        = "save_error"
)

// Envelope keys added by the compare orchestrator.
const (
	KeyContractAFilename   = "contractA_filename"
	KeyContractBFilename   = "contractB_filename"
	KeyUserUUID            = "user_uuid"
	KeyComparisonTimestamp = "comparison_timestamp"
)

// ExportFormat selects the tabular export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps each export format to its MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportCSV:  "text/csv; charset=utf-8",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
