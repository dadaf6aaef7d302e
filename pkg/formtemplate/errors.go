package formtemplate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedStructure matches every decode failure via errors.Is.
var ErrMalformedStructure = errors.New("formtemplate: malformed structure")

// ErrorKind classifies decode failures.
type ErrorKind string

// ErrorKindMalformedStructure covers serialisation failures, missing required
// option fields and type mismatches.
const ErrorKindMalformedStructure ErrorKind = "malformed-structure"

// DecodingError reports why a payload could not be decoded. Path locates the
// offending field using elements[i].data.options[j] notation when known.
type DecodingError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e DecodingError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid payload"
	}
	if strings.TrimSpace(e.Path) == "" {
		return "formtemplate: malformed structure: " + msg
	}
	return fmt.Sprintf("formtemplate: malformed structure: %s (%s)", msg, e.Path)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

// Is reports malformed-structure errors as ErrMalformedStructure.
func (e DecodingError) Is(target error) bool {
	return target == ErrMalformedStructure && e.Kind == ErrorKindMalformedStructure
}

func malformed(path string, cause error, format string, args ...any) DecodingError {
	return DecodingError{
		Kind:    ErrorKindMalformedStructure,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}
