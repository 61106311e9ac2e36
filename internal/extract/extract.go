// Package extract turns uploaded reference material into plain text excerpts
// used as generation context. Unreadable files degrade to a warning upstream;
// extraction never blocks a run.
package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

// Capability is the name used in warnings for extraction failures.
const Capability = "extract"

const (
	// maxExcerptChars bounds each excerpt so prompts stay within budget.
	maxExcerptChars = 3000
	// minPageChars filters pages whose extraction produced only noise.
	minPageChars = 50
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	noiseRe      = regexp.MustCompile(`[^\w\s.,;:!?\-()]`)
)

// Extractor produces a plain-text excerpt from an uploaded document.
type Extractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
}

// PDFExtractor extracts text from PDF uploads.
type PDFExtractor struct{}

func (PDFExtractor) Extract(r io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed inputs; treat that the same
	// as any other unreadable file.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = recovery.NewError(Capability, recovery.KindValidation,
				fmt.Errorf("unreadable pdf: %v", rec))
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("unreadable pdf: %w", err))
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if len(strings.TrimSpace(text)) < minPageChars {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := Clean(sb.String())
	if cleaned == "" {
		return "", recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("no readable content found"))
	}
	return cleaned, nil
}

// Clean collapses whitespace, strips non-text noise, and caps the excerpt
// length.
func Clean(text string) string {
	text = noiseRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > maxExcerptChars {
		text = text[:maxExcerptChars]
	}
	return text
}
