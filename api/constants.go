package api

const (
	// MaxInputFiles caps how many documents a single request may carry
	MaxInputFiles = 20

	// UploadFieldName is the multipart field carrying the documents
	UploadFieldName = "pdfs"

	// SingleFieldName is the multipart field used by single document endpoints
	SingleFieldName = "pdf"

	// JobsDefaultLimit caps the job listing when no limit is given
	JobsDefaultLimit = 20

	// maxErrorLength truncates upstream error messages in responses
	maxErrorLength = 200
)
