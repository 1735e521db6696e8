package dictionary

import (
	"errors"
	"fmt"
)

// ErrDictionaryUnavailable matches every FetchError and ParseError.
var ErrDictionaryUnavailable = errors.New("dictionary unavailable")

// FetchError reports that the dictionary source could not be read, either
// because the request failed or because the server answered with a
// non-success status.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch dictionary from %s: unexpected status code: %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch dictionary from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrDictionaryUnavailable }

// ParseError reports a dictionary body that is not a JSON object of
// string keys to string values.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse dictionary from %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrDictionaryUnavailable }
