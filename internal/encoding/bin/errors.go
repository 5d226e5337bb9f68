// Copyright (c) 2025 @AmarnathCJD

package bin

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrTruncated struct {
	Field string
	Want  int
	Has   int
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("%s: buffer truncated: want %d bytes, got %d", e.Field, e.Want, e.Has)
}

type ErrInvalidValue struct {
	Field string
	Value int
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("%s: invalid value %#x", e.Field, e.Value)
}

type ErrTrailingData struct {
	Count int
}

func (e *ErrTrailingData) Error() string {
	return fmt.Sprintf("%d unexpected trailing bytes", e.Count)
}

// Field reports which field a Reader error refers to, or "" if err did not come from a Reader.
func Field(err error) string {
	var (
		truncated *ErrTruncated
		invalid   *ErrInvalidValue
		trailing  *ErrTrailingData
	)
	switch {
	case errors.As(err, &truncated):
		return truncated.Field
	case errors.As(err, &invalid):
		return invalid.Field
	case errors.As(err, &trailing):
		return "trailing data"
	}
	return ""
}
