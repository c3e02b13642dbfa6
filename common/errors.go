package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure by the pipeline stage that produced it
type ErrorKind int

const (
	KindInputOpen ErrorKind = iota + 1
	KindHeaderParse
	KindRecordRead
	KindAggregation
	KindDirectoryCreate
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindInputOpen:
		return "input open"
	case KindHeaderParse:
		return "header parse"
	case KindRecordRead:
		return "record read"
	case KindAggregation:
		return "aggregation"
	case KindDirectoryCreate:
		return "directory create"
	case KindWrite:
		return "write"
	}
	return "unknown"
}

// ConversionError is returned by every stage of the conversion pipeline.
// Record is the 1-based data row number for KindRecordRead, zero otherwise.
type ConversionError struct {
	Kind   ErrorKind
	Path   string
	Record int
	Err    error
}

func (e *ConversionError) Error() string {
	switch e.Kind {
	case KindInputOpen:
		return fmt.Sprintf("unable to open %s: %v", e.Path, e.Err)
	case KindHeaderParse:
		return fmt.Sprintf("unable to read headers of %s: %v", e.Path, e.Err)
	case KindRecordRead:
		return fmt.Sprintf("unable to read record %d of %s: %v", e.Record, e.Path, e.Err)
	case KindAggregation:
		return fmt.Sprintf("unable to build json document: %v", e.Err)
	case KindDirectoryCreate:
		return fmt.Sprintf("error while building directories for %s: %v", e.Path, e.Err)
	case KindWrite:
		return fmt.Sprintf("error writing json to %s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ConversionError) Unwrap() error { return e.Err }

// NewError wraps err as a ConversionError of the given kind
func NewError(kind ErrorKind, path string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a ConversionError of kind
func IsKind(err error, kind ErrorKind) bool {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
