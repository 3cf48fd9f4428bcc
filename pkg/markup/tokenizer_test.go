package markup

import (
	"strings"
	"testing"
)

func flatten(segments []Segment) string {
	var parts []string
	for _, segment := range segments {
		if block, ok := segment.(TextBlock); ok {
			for _, line := range block.Lines {
				parts = append(parts, line.Text())
			}
		}
	}
	return strings.Join(parts, "\n")
}

func TestParse_PlainText(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("All teams must check in.\nSee the referee.", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	block, ok := segments[0].(TextBlock)
	if !ok {
		t.Fatalf("segment is %T, want TextBlock", segments[0])
	}
	if len(block.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(block.Lines))
	}
	if got := block.Lines[0].Text(); got != "All teams must check in." {
		t.Errorf("line 0 = %q", got)
	}
}

func TestParse_TableBlock(t *testing.T) {
	p := NewParser(nil, "")
	raw := "Scoring:\n{{TABLE}}\nA|B|C\n---|---|---\n1|2|3\n{{/TABLE}}\nDone."
	segments := p.Parse(raw, "")

	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	table, ok := segments[1].(Table)
	if !ok {
		t.Fatalf("segment 1 is %T, want Table", segments[1])
	}
	wantHeader := []string{"A", "B", "C"}
	if len(table.Header) != 3 {
		t.Fatalf("header = %v", table.Header)
	}
	for i, cell := range wantHeader {
		if table.Header[i] != cell {
			t.Errorf("header[%d] = %q, want %q", i, table.Header[i], cell)
		}
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d data rows, want 1 (separator must not produce a row)", len(table.Rows))
	}
	for i, cell := range []string{"1", "2", "3"} {
		if table.Rows[0][i] != cell {
			t.Errorf("row[0][%d] = %q, want %q", i, table.Rows[0][i], cell)
		}
	}
}

func TestParse_UnterminatedBlockIsLiteral(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("before {{TABLE}} after", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	block, ok := segments[0].(TextBlock)
	if !ok {
		t.Fatalf("segment is %T, want TextBlock", segments[0])
	}
	if got := block.Lines[0].Text(); got != "before {{TABLE}} after" {
		t.Errorf("flattened = %q, want the opening delimiter kept as literal text", got)
	}
}

func TestParse_Image(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("{{IMAGE:https://example.org/field.png}}", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	image, ok := segments[0].(Image)
	if !ok {
		t.Fatalf("segment is %T, want Image", segments[0])
	}
	if image.URL != "https://example.org/field.png" {
		t.Errorf("URL = %q", image.URL)
	}
}

func TestParse_UnterminatedImageIsLiteral(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("see {{IMAGE:broken", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	block := segments[0].(TextBlock)
	if got := block.Lines[0].Text(); got != "see {{IMAGE:broken" {
		t.Errorf("flattened = %q", got)
	}
}

func TestParse_CalloutLines(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("{{CALLOUT}}\nNote one.\nNote two.\n{{/CALLOUT}}", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	callout, ok := segments[0].(Callout)
	if !ok {
		t.Fatalf("segment is %T, want Callout", segments[0])
	}
	if len(callout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(callout.Lines))
	}
	if got := callout.Lines[1].Text(); got != "Note two." {
		t.Errorf("line 1 = %q", got)
	}
}

func TestParse_ViolationNotes(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("{{VIOLATION_NOTES}}\nMinor: warning.\n{{/VIOLATION_NOTES}}", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	notes, ok := segments[0].(ViolationNotes)
	if !ok {
		t.Fatalf("segment is %T, want ViolationNotes", segments[0])
	}
	if got := notes.Lines[0].Text(); got != "Minor: warning." {
		t.Errorf("line 0 = %q", got)
	}
}

func TestParse_BlocksDoNotNest(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("{{CALLOUT}}\nlook {{IMAGE:x.png}} here\n{{/CALLOUT}}", "")

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1 (no recursive block parse)", len(segments))
	}
	callout := segments[0].(Callout)
	if got := callout.Lines[0].Text(); !strings.Contains(got, "{{IMAGE:x.png}}") {
		t.Errorf("nested block tag should stay literal inside a callout, got %q", got)
	}
}

func TestParse_EmptyTableDropped(t *testing.T) {
	p := NewParser(nil, "")
	segments := p.Parse("{{TABLE}}\nOnlyHeader|Row\n{{/TABLE}}", "")
	if len(segments) != 0 {
		t.Fatalf("header-only table must render nothing, got %d segments", len(segments))
	}

	segments = p.Parse("{{TABLE}}\n---|---\n{{/TABLE}}", "")
	if len(segments) != 0 {
		t.Fatalf("separator-only table must render nothing, got %d segments", len(segments))
	}
}

func TestParse_FlattenEqualsInputWithoutMarkup(t *testing.T) {
	p := NewParser(nil, "")
	raw := "Teams {{BOLD}}must{{/BOLD}} not cross the {{RED_ITALIC}}autonomous line{{/RED_ITALIC}} early."
	segments := p.Parse(raw, "")

	want := Strip(raw)
	if got := flatten(segments); got != want {
		t.Errorf("flatten = %q, want %q", got, want)
	}
}

func TestParse_ReparseIdempotent(t *testing.T) {
	p := NewParser(nil, "")
	raw := "A {{BOLD}}bold{{/BOLD}} statement with <G1> inside."
	flat := flatten(p.Parse(raw, ""))

	segments := p.Parse(flat, "")
	if len(segments) != 1 {
		t.Fatalf("reparse produced %d segments, want 1", len(segments))
	}
	block := segments[0].(TextBlock)
	for _, run := range block.Lines[0] {
		if run.Style != (Style{}) {
			t.Errorf("run %q carries style %+v after reparse of plain text", run.Text, run.Style)
		}
		if run.Action != nil && run.Action.Kind == ActionOpenLink {
			t.Errorf("run %q carries a link action after reparse", run.Text)
		}
	}
	if got := flatten(segments); got != flat {
		t.Errorf("second flatten = %q, want %q", got, flat)
	}
}

func TestStrip(t *testing.T) {
	in := "{{BOLD}}a{{/BOLD}} {{LINK:https://x}}b{{/LINK}} c"
	if got := Strip(in); got != "a b c" {
		t.Errorf("Strip = %q, want %q", got, "a b c")
	}
}
