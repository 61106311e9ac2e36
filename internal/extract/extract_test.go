package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

func TestCleanCollapsesWhitespaceAndNoise(t *testing.T) {
	in := "Some   text\n\twith  ☃ odd   spacing, and (notes)."
	got := Clean(in)
	want := "Some text with odd spacing, and (notes)."
	if got != want {
		t.Fatalf("clean mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestCleanCapsLength(t *testing.T) {
	in := strings.Repeat("word ", 2000)
	got := Clean(in)
	if len(got) > maxExcerptChars {
		t.Fatalf("excerpt not capped: %d chars", len(got))
	}
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	data := []byte("this is not a pdf document at all")
	_, err := PDFExtractor{}.Extract(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatalf("expected error for non-pdf input")
	}
	if recovery.KindOf(err) != recovery.KindValidation {
		t.Fatalf("expected validation kind, got %s", recovery.KindOf(err))
	}
}
