package extract

import "fmt"

// UnsupportedTypeError indicates the declared MIME type is not in the
// allow-list.
type UnsupportedTypeError struct {
	MIMEType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (only PDF and DOCX are allowed)", e.MIMEType)
}

// TooLargeError indicates the declared or actual size exceeds the limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file size %d exceeds limit of %d bytes", e.Size, e.Limit)
}

// ExtractionError indicates the file could not be decoded or yielded no
// text after trimming.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
