package types

import (
	"errors"
	"fmt"
)

// Process exit codes, one per error kind.
const (
	ExitOK            = 0
	ExitUnknown       = 1
	ExitConfiguration = 2
	ExitTransport     = 3
	ExitNotFound      = 4
	ExitSerialization = 5
	ExitFile          = 6
)

// ConfigurationError reports an invalid operation or configuration value.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// TransportError reports a GET that failed outright, or (with a strict status
// policy) answered with a non-2xx status.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError reports a required selector with no match, or a matched
// element missing a required attribute.
type NotFoundError struct {
	Selector string
	Attr     string
}

func (e *NotFoundError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("not found: attribute %q on %q", e.Attr, e.Selector)
	}
	return fmt.Sprintf("not found: no element matches %q", e.Selector)
}

type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string { return "serialize records: " + e.Err.Error() }
func (e *SerializationError) Unwrap() error { return e.Err }

// FileError reports a failure creating, locking or writing an output path.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// ExitCode maps an error from a run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		cfgErr  *ConfigurationError
		tErr    *TransportError
		nfErr   *NotFoundError
		serErr  *SerializationError
		fileErr *FileError
	)
	switch {
	case errors.As(err, &cfgErr):
		return ExitConfiguration
	case errors.As(err, &tErr):
		return ExitTransport
	case errors.As(err, &nfErr):
		return ExitNotFound
	case errors.As(err, &serErr):
		return ExitSerialization
	case errors.As(err, &fileErr):
		return ExitFile
	default:
		return ExitUnknown
	}
}
