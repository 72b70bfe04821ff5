package converter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/parser"
)

// Kind classifies a conversion failure.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindUndetectableFormat
	KindTokenCountMismatch
	KindNumericParseFailure
	KindInvalidZone
	KindOutOfProjectionRange
)

func (k Kind) String() string {
	switch k {
	case KindUndetectableFormat:
		return "UndetectableFormat"
	case KindTokenCountMismatch:
		return "TokenCountMismatch"
	case KindNumericParseFailure:
		return "NumericParseFailure"
	case KindInvalidZone:
		return "InvalidZone"
	case KindOutOfProjectionRange:
		return "OutOfProjectionRange"
	}
	return "Unknown(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf classifies an error returned by this package or by the parser and
// geo packages.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, parser.ErrUndetectableFormat):
		return KindUndetectableFormat
	case errors.Is(err, parser.ErrTokenCount):
		return KindTokenCountMismatch
	case errors.Is(err, parser.ErrNumericParse):
		return KindNumericParseFailure
	case errors.Is(err, geo.ErrInvalidZone):
		return KindInvalidZone
	case errors.Is(err, geo.ErrOutOfProjectionRange):
		return KindOutOfProjectionRange
	}
	return KindUnknown
}

// LineError is the failure of one input line.
type LineError struct {
	Err     error  `json:"-" yaml:"-"`
	Text    string `json:"-" yaml:"-"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"-" yaml:"-"`
	Kind    Kind   `json:"kind" yaml:"kind"`
}

func newLineError(line int, text string, err error) *LineError {
	return &LineError{
		Err:     err,
		Text:    text,
		Message: err.Error(),
		Line:    line,
		Kind:    KindOf(err),
	}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying parser or geo error.
func (e *LineError) Unwrap() error {
	return e.Err
}
