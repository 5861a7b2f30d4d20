package errs

import (
	"strings"
	"testing"
)

func TestSimpleAndAdd(t *testing.T) {
	loc := Loc{Filename: "foo.spy", LineStart: 3, ColStart: 5, LineEnd: 3, ColEnd: 8}
	err := Simple("TypeError", "expected `i32`, got `str`", "", loc)
	err.Add(LevelNote, "argument declared here", loc)

	if !err.Match("TypeError") {
		t.Fatalf("expected Match(TypeError) to be true")
	}
	if len(err.Annotations) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(err.Annotations))
	}
	if !strings.Contains(err.Error(), "TypeError") {
		t.Fatalf("Error() should mention the etype, got %q", err.Error())
	}
}

func TestPanicErrorFormatting(t *testing.T) {
	p := &PanicError{Message: "division by zero", File: "foo.spy", Line: 10}
	got := p.Error()
	want := "foo.spy:10: panic: division by zero"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatterRendersUnderline(t *testing.T) {
	loc := Loc{Filename: "foo.spy", LineStart: 1, ColStart: 5, LineEnd: 1, ColEnd: 8}
	err := Simple("ValueError", "bad literal", "", loc)
	src := MapSource{"foo.spy": {"x = bar + 1"}}
	out := NewFormatter(false).Format(err, src)
	if !strings.Contains(out, "x = bar + 1") {
		t.Fatalf("expected source excerpt in output, got %q", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Fatalf("expected caret underline in output, got %q", out)
	}
}

func TestTracebackFormat(t *testing.T) {
	tb := &Traceback{}
	tb.Push(Frame{FuncName: "outer", Loc: Loc{Filename: "a.spy", LineStart: 1, ColStart: 1}})
	tb.Push(Frame{FuncName: "inner", Loc: Loc{Filename: "a.spy", LineStart: 2, ColStart: 1}})

	err := New("TypeError", "boom")
	err = WithTraceback(err, tb)
	last := err.Annotations[len(err.Annotations)-1]
	if !strings.Contains(last.Message, "inner") || !strings.Contains(last.Message, "outer") {
		t.Fatalf("expected both frames in traceback, got %q", last.Message)
	}
}
