package model

import (
	"errors"
	"strings"
)

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidSubjectCode = errors.New("subject code may only contain letters and digits")
	ErrInvalidYear        = errors.New("year must be two digits")
	ErrInvalidComponent   = errors.New("component must be numeric")
)

// ValidationError reports a request that cannot be submitted
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + " (" + strings.Join(e.Fields, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }
