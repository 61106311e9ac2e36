// Package parser turns raw model output into typed content blocks. The
// classifier is deterministic and never fails: anything it cannot recognize
// becomes a paragraph.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
)

// Heading heuristics are a tunable policy, not a contract. Generated text is
// inconsistent about what a heading looks like; these bounds were picked
// against representative model samples.
const (
	headingMaxChars = 80
	headingMaxWords = 8
)

var (
	numberedRe = regexp.MustCompile(`^(\d+)[.)]\s+`)
	mdHeadingRe = regexp.MustCompile(`^(#{1,6})\s+`)
	boldLineRe  = regexp.MustCompile(`^\*\*(.+)\*\*:?$`)
)

// Parse classifies each line of raw text into content blocks, merging
// consecutive plain lines into single paragraphs. All-blank input yields no
// blocks; callers that need a non-empty result supply their own fallback.
func Parse(raw string) []document.ContentBlock {
	var blocks []document.ContentBlock
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, document.ContentBlock{
			Kind: document.BlockParagraph,
			Text: strings.Join(para, " "),
		})
		para = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		switch {
		case isBullet(line):
			flush()
			blocks = append(blocks, document.ContentBlock{
				Kind: document.BlockBullet,
				Text: strings.TrimSpace(trimBulletMarker(line)),
			})

		case numberedRe.MatchString(line):
			flush()
			m := numberedRe.FindStringSubmatch(line)
			idx, _ := strconv.Atoi(m[1])
			blocks = append(blocks, document.ContentBlock{
				Kind:  document.BlockNumbered,
				Index: idx,
				Text:  strings.TrimSpace(line[len(m[0]):]),
			})

		case mdHeadingRe.MatchString(line):
			flush()
			m := mdHeadingRe.FindStringSubmatch(line)
			blocks = append(blocks, document.ContentBlock{
				Kind:  document.BlockHeading,
				Level: len(m[1]),
				Text:  strings.TrimSpace(line[len(m[0]):]),
			})

		case isHeadingLike(line):
			flush()
			blocks = append(blocks, document.ContentBlock{
				Kind:  document.BlockHeading,
				Level: 2,
				Text:  strings.TrimSuffix(headingText(line), ":"),
			})

		default:
			para = append(para, line)
		}
	}
	flush()

	return blocks
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ")
}

func trimBulletMarker(line string) string {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return line[len(marker):]
		}
	}
	return line
}

// isHeadingLike recognizes short standalone lines that end in a colon or are
// fully bold-wrapped; generated text uses both styles for section headings.
func isHeadingLike(line string) bool {
	if len(line) > headingMaxChars || len(strings.Fields(line)) > headingMaxWords {
		return false
	}
	if boldLineRe.MatchString(line) {
		return true
	}
	if !strings.HasSuffix(line, ":") {
		return false
	}
	// A colon mid-sentence ("Note: this matters because...") is not a heading.
	body := strings.TrimSuffix(line, ":")
	return !strings.ContainsAny(body, ".!?:")
}

func headingText(line string) string {
	if m := boldLineRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return line
}
