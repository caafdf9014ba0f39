package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeMissingField   = "missing_field"

	// Resource errors
	ErrCodeNotFound    = "not_found"
	ErrCodeNoQuestions = "no_questions"

	// Ingestion errors
	ErrCodeIngestionFailed = "ingestion_failed"
	ErrCodeWorkbookMissing = "workbook_missing"

	// Server errors
	ErrCodeInternalError    = "internal_error"
	ErrCodeStoreUnavailable = "store_unavailable"
)
