package llm

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the completion API key was never configured.
// This is a deployment problem, not a runtime outage, and callers surface
// it differently from transport or upstream failures.
var ErrUnavailable = errors.New("completion API key is not configured")

// TransportError represents a network-level failure reaching the
// completion endpoint (connection refused, timeout, DNS).
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// UpstreamError represents a non-2xx response from the completion API.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("completion API error: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("completion API error: status %d", e.Status)
}

// DecodeError indicates model output was not valid JSON after
// fence-stripping. RawOutput carries the full model text for diagnosis.
type DecodeError struct {
	RawOutput string
	Cause     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("model output was not valid JSON: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
