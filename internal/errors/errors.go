package errors

import (
	"fmt"
	"time"
)

/**
 * Error types for the dococr command
 *
 * The taxonomy is flat on purpose: a caller only ever sees the message.
 * Stage is carried for log lines, never for the JSON result.
 */

// ErrorCode enum for structured error handling
type ErrorCode string

const (
	ErrorMissingArgument  ErrorCode = "MISSING_ARGUMENT"
	ErrorProcessingFailed ErrorCode = "PROCESSING_FAILED"
)

// Stage names the pipeline step a processing error came from
type Stage string

const (
	StageConfig    Stage = "config"
	StageResolve   Stage = "resolve"
	StageRasterize Stage = "rasterize"
	StageRecognize Stage = "recognize"
)

// MissingArgumentMessage is the fixed message emitted when no document id is given.
const MissingArgumentMessage = "No document ID provided"

// ProcessingError represents a structured processing error
type ProcessingError struct {
	Code       ErrorCode
	Stage      Stage
	DocumentID string
	Message    string
	Timestamp  time.Time
	Cause      error
}

// Error returns the human readable message. The code is left out so the
// string can be handed to callers verbatim.
func (e *ProcessingError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// Factory functions

func NewMissingArgumentError() *ProcessingError {
	return &ProcessingError{
		Code:      ErrorMissingArgument,
		Message:   MissingArgumentMessage,
		Timestamp: time.Now(),
	}
}

func NewProcessingError(documentID string, stage Stage, cause error) *ProcessingError {
	return &ProcessingError{
		Code:       ErrorProcessingFailed,
		Stage:      stage,
		DocumentID: documentID,
		Timestamp:  time.Now(),
		Cause:      cause,
	}
}

// LogFields flattens the error into key/value pairs for the logger
func (e *ProcessingError) LogFields() []interface{} {
	fields := []interface{}{"error_code", string(e.Code)}
	if e.Stage != "" {
		fields = append(fields, "stage", string(e.Stage))
	}
	if e.DocumentID != "" {
		fields = append(fields, "document_id", e.DocumentID)
	}
	if e.Cause != nil {
		fields = append(fields, "cause", e.Cause.Error())
	}
	return fields
}
