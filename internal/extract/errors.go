package extract

import (
	"errors"
	"fmt"
)

// maxRawErrorLen caps how much of a bad model response is kept in the error.
const maxRawErrorLen = 200

// ProviderError means the backend kept failing after all retry attempts.
// It covers transport failures and non-success API responses.
type ProviderError struct {
	StudyID string
	Model   string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error for study %s (model %s): %v", e.StudyID, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError means the backend answered but the payload could
// not be decoded or violated the schema. It is never retried; the same
// prompt would produce the same broken answer.
type MalformedResponseError struct {
	StudyID string
	Model   string
	Err     error
	Raw     string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response for study %s (model %s): %v", e.StudyID, e.Model, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ExtractionFailedError means a strategy could not produce a result for a
// report for reasons other than the provider, e.g. an empty report body.
type ExtractionFailedError struct {
	StudyID  string
	Strategy string
	Err      error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("extraction failed for study %s (strategy %s): %v", e.StudyID, e.Strategy, e.Err)
}

func (e *ExtractionFailedError) Unwrap() error { return e.Err }

// ErrorKind names the failure class of an extraction error for outcome
// records and log lines.
func ErrorKind(err error) string {
	var (
		provider  *ProviderError
		malformed *MalformedResponseError
		failed    *ExtractionFailedError
	)
	switch {
	case errors.As(err, &provider):
		return "provider_error"
	case errors.As(err, &malformed):
		return "malformed_response"
	case errors.As(err, &failed):
		return "extraction_failed"
	default:
		return "error"
	}
}

func truncateRaw(s string) string {
	if len(s) <= maxRawErrorLen {
		return s
	}
	return s[:maxRawErrorLen] + "..."
}
