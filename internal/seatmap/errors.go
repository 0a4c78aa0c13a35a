// =============================================================================
// Seatmap Converter - Error Kinds
// =============================================================================
//
// Every failure of the parser is reported as an *Error with one Kind:
//
//   InputNotFound        - the file does not exist or cannot be opened
//   MalformedDocument    - the file is not well-formed XML
//   UnsupportedDialect   - the root element matches neither dialect
//   StructuralViolation  - a required element or attribute is missing/invalid
//   UnresolvedReference  - a key points at nothing (wrapped in a violation)
//   OutputContract       - converted data fails the output contract
//
// Callers match kinds with errors.Is against the Err* sentinels.
//
// =============================================================================

package seatmap

import (
	"errors"
	"fmt"
)

// Kind classifies conversion failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInputNotFound: input path does not resolve to a readable document.
	KindInputNotFound
	// KindMalformedDocument: input is not well-formed XML.
	KindMalformedDocument
	// KindUnsupportedDialect: root tag matches neither known marker.
	KindUnsupportedDialect
	// KindStructuralViolation: a required attribute or element is missing or invalid.
	KindStructuralViolation
	// KindUnresolvedReference: an IATA cross-reference does not resolve.
	KindUnresolvedReference
	// KindOutputContract: produced data fails the output contract check.
	KindOutputContract
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown error",
	KindInputNotFound:       "file not found",
	KindMalformedDocument:   "invalid file format",
	KindUnsupportedDialect:  "XML format not supported",
	KindStructuralViolation: "structural violation",
	KindUnresolvedReference: "unresolved reference",
	KindOutputContract:      "output contract violation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrInputNotFound       = &Error{Kind: KindInputNotFound}
	ErrMalformedDocument   = &Error{Kind: KindMalformedDocument}
	ErrUnsupportedDialect  = &Error{Kind: KindUnsupportedDialect}
	ErrStructuralViolation = &Error{Kind: KindStructuralViolation}
	ErrUnresolvedReference = &Error{Kind: KindUnresolvedReference}
	ErrOutputContract      = &Error{Kind: KindOutputContract}
)

// Error is returned by every failing conversion step.
type Error struct {
	Kind Kind
	// Path locates the failure in the document, e.g. "SeatMapResponse[2]/RowInfo[5]".
	Path string
	Msg  string
	Err  error
}

// NewError builds an error of the given kind.
func NewError(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// WrapError builds an error of the given kind around a cause.
func WrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Path != "" {
		s += " (at " + e.Path + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
