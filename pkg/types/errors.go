// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// FailureKind identifies the pipeline stage that failed.
type FailureKind string

const (
	FailureFetch     FailureKind = "fetch"
	FailureLocate    FailureKind = "locate"
	FailureExtract   FailureKind = "extract"
	FailureSerialize FailureKind = "serialize"
)

// StageError tags an error with the stage that produced it.
type StageError struct {
	Kind FailureKind
	Err  error
}

// Fail wraps err as a StageError of the given kind. A nil err yields nil.
func Fail(kind FailureKind, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of the first StageError in err's chain,
// or "" when there is none.
func KindOf(err error) FailureKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
