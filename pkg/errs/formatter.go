package errs

import (
	"fmt"
	"strings"
)

// Formatter renders an SPyError into a human-readable report with
// caret-underlined source excerpts, following spy/errfmt.py's
// ErrorFormatter: a "--> file:line:col" pointer line, the source line
// itself, and a caret range ('^' under every column of the span).
type Formatter struct {
	UseColors bool
}

func NewFormatter(useColors bool) *Formatter {
	return &Formatter{UseColors: useColors}
}

// Source supplies source lines on demand, by filename and 1-based line
// number, for excerpt rendering. It returns ("", false) if the line is
// unavailable (e.g. synthetic/no-location errors).
type Source interface {
	Line(filename string, lineno int) (string, bool)
}

// MapSource is a trivial Source backed by filename -> line slice (0-indexed
// internally, addressed with 1-based line numbers like Loc).
type MapSource map[string][]string

func (m MapSource) Line(filename string, lineno int) (string, bool) {
	lines, ok := m[filename]
	if !ok || lineno < 1 || lineno > len(lines) {
		return "", false
	}
	return lines[lineno-1], true
}

func (f *Formatter) Format(err *SPyError, src Source) string {
	var b strings.Builder
	for i, ann := range err.Annotations {
		if i == 0 {
			fmt.Fprintf(&b, "%s: %s\n", err.EType, ann.Message)
		}
		f.emitAnnotation(&b, ann, src)
	}
	return b.String()
}

func (f *Formatter) emitAnnotation(b *strings.Builder, ann Annotation, src Source) {
	if ann.Loc.IsZero() {
		if ann.Level != LevelError {
			fmt.Fprintf(b, "%s: %s\n", ann.Level, ann.Message)
		}
		return
	}
	fmt.Fprintf(b, "   --> %s\n", ann.Loc)
	line, ok := src.Line(ann.Loc.Filename, ann.Loc.LineStart)
	if !ok {
		return
	}
	fmt.Fprintf(b, "    | %s\n", line)
	fmt.Fprintf(b, "    | %s\n", makeUnderline(ann.Loc, line))
	if ann.Level != LevelError {
		fmt.Fprintf(b, "    = %s: %s\n", ann.Level, ann.Message)
	}
}

// makeUnderline builds the caret line under a source excerpt: '^' repeated
// across the span's full width, whatever its length.
func makeUnderline(loc Loc, line string) string {
	col := loc.ColStart
	if col < 1 {
		col = 1
	}
	width := loc.ColEnd - loc.ColStart
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", col-1)
	return pad + strings.Repeat("^", width)
}
