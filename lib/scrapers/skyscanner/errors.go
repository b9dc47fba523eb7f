package skyscanner

import (
	"errors"
	"fmt"
)

var (
	// ErrResolution is matched by every *ResolutionError.
	ErrResolution = errors.New("place resolution failed")
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("markup parse failed")
	// ErrDataLoad is matched by every *DataLoadError.
	ErrDataLoad = errors.New("data load failed")
)

// ResolutionError means a place query yielded no usable place id.
type ResolutionError struct {
	Query  string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve place %q: %s", e.Query, e.Reason)
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// ParseError means a token could not be found in the search results markup,
// either the markup changed or the search did not create a session.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not find %s: %s", e.Token, e.Err.Error())
	}
	return fmt.Sprintf("could not find %s", e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DataLoadError means an endpoint's body could not be loaded as the expected
// structure.
type DataLoadError struct {
	Endpoint string
	Err      error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("could not load %s data: %s", e.Endpoint, e.Err.Error())
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func (e *DataLoadError) Is(target error) bool {
	return target == ErrDataLoad
}
