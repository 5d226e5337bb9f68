// Copyright (c) 2025 @AmarnathCJD

package sessionconv

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies conversion failures.
type Kind uint8

const (
	KindMalformedSession Kind = iota + 1
	KindUnsupportedVersion
	KindUnknownFormat
	KindUnknownDataCenter
	KindIncompleteSession
)

func (k Kind) String() string {
	switch k {
	case KindMalformedSession:
		return "MALFORMED_SESSION"
	case KindUnsupportedVersion:
		return "UNSUPPORTED_VERSION"
	case KindUnknownFormat:
		return "UNKNOWN_FORMAT"
	case KindUnknownDataCenter:
		return "UNKNOWN_DATA_CENTER"
	case KindIncompleteSession:
		return "INCOMPLETE_SESSION"
	default:
		return "UNKNOWN"
	}
}

// Error is returned by every codec and by the Converter. Field names the part of the
// session at fault, when there is one.
type Error struct {
	Kind   Kind
	Format Format
	Field  string
	Err    error
}

// Sentinels for errors.Is. They match any *Error of the same Kind anywhere in the chain.
var (
	ErrMalformedSession   = &Error{Kind: KindMalformedSession}
	ErrUnsupportedVersion = &Error{Kind: KindUnsupportedVersion}
	ErrUnknownFormat      = &Error{Kind: KindUnknownFormat}
	ErrUnknownDataCenter  = &Error{Kind: KindUnknownDataCenter}
	ErrIncompleteSession  = &Error{Kind: KindIncompleteSession}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[" + e.Kind.String() + "]")
	if e.Format != "" {
		b.WriteString(" " + string(e.Format) + ":")
	}
	if e.Field != "" {
		b.WriteString(" " + e.Field + ":")
	}
	if e.Err != nil {
		b.WriteString(" " + e.Err.Error())
	}
	return strings.TrimSuffix(b.String(), ":")
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil || t.Format != "" || t.Field != "" {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the outermost *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func malformed(f Format, field string, err error) error {
	return &Error{Kind: KindMalformedSession, Format: f, Field: field, Err: err}
}

func unsupported(f Format, version any) error {
	return &Error{Kind: KindUnsupportedVersion, Format: f, Field: "version", Err: errors.Errorf("unsupported version %v", version)}
}

func incomplete(f Format, field string, err error) error {
	return &Error{Kind: KindIncompleteSession, Format: f, Field: field, Err: err}
}
