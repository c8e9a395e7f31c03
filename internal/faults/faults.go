// Package faults defines the error taxonomy shared by the sync pipeline.
//
// Every failure surfaced by the pipeline falls into one of three classes:
// operator mistakes (ConfigurationError), failed calls to an external service
// (TransportError), or malformed input data (DataError). All three are fatal
// for a run; none are retried.
package faults

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates invalid or missing operator-supplied
// configuration, such as an unmapped branch prefix or a malformed page
// identifier. It is never retryable.
type ConfigurationError struct {
	// Reason describes what part of the configuration is wrong.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "configuration error"
	}
	return "configuration error: " + e.Reason
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// TransportError indicates a failed call to an external service (the Notion
// API or the OpenAI API). Status and Code are zero/empty when the request
// never produced an HTTP response.
type TransportError struct {
	// Service names the remote service, e.g. "notion" or "openai".
	Service string
	// Status is the HTTP status code of the failed response, if any.
	Status int
	// Code is the service-specific error code, if the response carried one.
	Code string
	// Message is the service-provided error message or a transport summary.
	Message string
	// Err is the underlying error for requests that failed before a response.
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport error"
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	case e.Code != "":
		return fmt.Sprintf("%s request failed: status=%d code=%s message=%s", e.Service, e.Status, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s request failed: status=%d message=%s", e.Service, e.Status, e.Message)
	}
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// DataError indicates a malformed or incomplete input payload, such as a
// GitHub event file missing required pull request fields.
type DataError struct {
	// Reason describes what is wrong with the payload.
	Reason string
}

func (e *DataError) Error() string {
	if e == nil {
		return "data error"
	}
	return "data error: " + e.Reason
}

// IsData reports whether err is a DataError.
func IsData(err error) bool {
	var target *DataError
	return errors.As(err, &target)
}
