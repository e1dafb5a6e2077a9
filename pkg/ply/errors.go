package ply

import (
	"errors"
	"fmt"
)

// PLY parse errors.
var (
	ErrMalformedHeader = errors.New("malformed PLY header")
	ErrMalformedBody   = errors.New("malformed PLY body")
	ErrTruncated       = errors.New("truncated PLY data")
)

// ParseError describes where and why parsing stopped.
// It matches its phase sentinel with errors.Is, and also ErrTruncated when
// the input ended early.
type ParseError struct {
	Line      int   // 1-based line number, or the line that was expected
	Phase     error // ErrMalformedHeader or ErrMalformedBody
	Truncated bool
	Msg       string
}

func (e *ParseError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("%v: %v: line %d: %s", e.Phase, ErrTruncated, e.Line, e.Msg)
	}
	return fmt.Sprintf("%v: line %d: %s", e.Phase, e.Line, e.Msg)
}

// Unwrap returns the phase sentinel.
func (e *ParseError) Unwrap() error {
	return e.Phase
}

// Is reports whether target is ErrTruncated for a truncated parse.
func (e *ParseError) Is(target error) bool {
	return e.Truncated && target == ErrTruncated
}

func headerError(line int, format string, args ...any) error {
	return &ParseError{Line: line, Phase: ErrMalformedHeader, Msg: fmt.Sprintf(format, args...)}
}

func bodyError(line int, format string, args ...any) error {
	return &ParseError{Line: line, Phase: ErrMalformedBody, Msg: fmt.Sprintf(format, args...)}
}

func truncatedError(phase error, line int, format string, args ...any) error {
	return &ParseError{Line: line, Phase: phase, Truncated: true, Msg: fmt.Sprintf(format, args...)}
}
