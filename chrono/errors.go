package chrono

import (
	"errors"
	"fmt"
)

// ErrOverflow is wrapped by every arithmetic operation whose mathematical
// result does not fit the target integer width. Results are never silently
// wrapped or saturated.
var ErrOverflow = errors.New("long arithmetic overflow")

// DateTimeError reports a date/time calculation problem, most commonly a
// field value outside its valid range for the given context. The message
// carries the field identity and the attempted value.
type DateTimeError struct {
	Msg string
}

func (e *DateTimeError) Error() string { return e.Msg }

func newDateTimeError(format string, args ...any) *DateTimeError {
	return &DateTimeError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedError reports a request for a field or unit that the temporal
// object does not model.
type UnsupportedError struct {
	Msg string
}

func (e *UnsupportedError) Error() string { return e.Msg }

func errUnsupportedField(field TemporalField) *UnsupportedError {
	return &UnsupportedError{Msg: fmt.Sprintf("unsupported field: %s", field)}
}

func errUnsupportedUnit(unit TemporalUnit) *UnsupportedError {
	return &UnsupportedError{Msg: fmt.Sprintf("unsupported unit: %s", unit)}
}

func newOverflowError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrOverflow)
}

// ParseError reports malformed duration or period text. Offset is a
// best-effort character position and is reported as 0 by the current
// parsers.
type ParseError struct {
	Text   string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q at index %d", e.Msg, e.Text, e.Offset)
}

func newParseError(text, msg string) *ParseError {
	return &ParseError{Text: text, Offset: 0, Msg: msg}
}
