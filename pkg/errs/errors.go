// Package errs implements SPy's static/compile-time and runtime error
// values, independent of how they end up formatted or printed.
package errs

import "fmt"

// Level is the severity of a single annotation inside an error report.
type Level string

const (
	LevelError Level = "error"
	LevelNote  Level = "note"
	LevelPanic Level = "panic"
)

// Loc is a source location: a filename plus a half-open line/column range.
// A zero Loc means "no location" (used for errors raised before any source
// has been attached, e.g. manifest/lockfile errors).
type Loc struct {
	Filename   string
	LineStart  int
	ColStart   int
	LineEnd    int
	ColEnd     int
}

func (l Loc) IsZero() bool {
	return l.Filename == "" && l.LineStart == 0 && l.LineEnd == 0
}

func (l Loc) String() string {
	if l.IsZero() {
		return "<unknown location>"
	}
	if l.LineStart == l.LineEnd {
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.LineStart, l.ColStart)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.Filename, l.LineStart, l.ColStart, l.LineEnd, l.ColEnd)
}

// Annotation is one line of an error report: a severity, a message, and the
// source location it points at.
type Annotation struct {
	Level   Level
	Message string
	Loc     Loc
}

// SPyError is the typed error value used for every static error raised by
// this module: parsing, scope analysis, type checking, and redshift.
// It is kept decoupled from its rendering, following the same shape as
// spy/errors.py's SPyError: an etype name plus an ordered annotation list,
// the first of which is the primary message.
type SPyError struct {
	EType       string
	Annotations []Annotation
}

// New creates an SPyError with a single primary annotation at no location.
func New(etype, message string) *SPyError {
	return &SPyError{
		EType:       etype,
		Annotations: []Annotation{{Level: LevelError, Message: message}},
	}
}

// Simple creates an SPyError with a primary annotation and, if secondary is
// non-empty, a trailing note annotation at the same location.
func Simple(etype, primary, secondary string, loc Loc) *SPyError {
	e := &SPyError{
		EType: etype,
		Annotations: []Annotation{
			{Level: LevelError, Message: primary, Loc: loc},
		},
	}
	if secondary != "" {
		e.Annotations = append(e.Annotations, Annotation{Level: LevelNote, Message: secondary, Loc: loc})
	}
	return e
}

// Add appends another annotation to the error and returns it, so callers can
// chain: return errs.New(...).Add(...)
func (e *SPyError) Add(level Level, message string, loc Loc) *SPyError {
	e.Annotations = append(e.Annotations, Annotation{Level: level, Message: message, Loc: loc})
	return e
}

func (e *SPyError) Error() string {
	if len(e.Annotations) == 0 {
		return e.EType
	}
	primary := e.Annotations[0]
	if primary.Loc.IsZero() {
		return fmt.Sprintf("%s: %s", e.EType, primary.Message)
	}
	return fmt.Sprintf("%s: %s: %s", primary.Loc, e.EType, primary.Message)
}

// Match reports whether this error's etype names the given class, e.g.
// err.Match("TypeError").
func (e *SPyError) Match(etype string) bool {
	return e.EType == etype
}

// PanicError is a runtime (as opposed to compile-time) failure: division by
// zero, an out-of-bounds access, a nil pointer dereference. Unlike
// SPyError, it always carries the concrete site of failure rather than a
// list of annotations, mirroring spy/errors.py's SPyPanicError.
type PanicError struct {
	Message string
	File    string
	Line    int
}

func (p *PanicError) Error() string {
	if p.File == "" {
		return "panic: " + p.Message
	}
	return fmt.Sprintf("%s:%d: panic: %s", p.File, p.Line, p.Message)
}
