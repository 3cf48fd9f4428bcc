package pdftext

import "testing"

func TestNormalizeCollapsesSpaces(t *testing.T) {
	in := "Rules   of \t the  game"
	want := "Rules of the game"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeParagraphBreaks(t *testing.T) {
	in := "First paragraph.\n\n\n\nSecond paragraph.\n"
	want := "First paragraph.\n\nSecond paragraph."
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeTrimsLineEdges(t *testing.T) {
	in := "  leading\ntrailing  \n"
	want := "leading\ntrailing"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
