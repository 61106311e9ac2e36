// Package render turns a finished artifact into the single output file of a
// run: GitHub-flavored markdown or a standalone styled HTML document.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
)

// imageSrc resolves one image asset to the src string used in markdown
// output. The markdown renderer points at sibling files, the HTML renderer
// inlines data URIs.
type imageSrc func(sectionIdx, imageIdx int, asset document.ImageAsset) string

// Slug returns the filesystem-safe name derived from a document title.
func Slug(title string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.Trim(sb.String(), "-")
	if s == "" {
		return "document"
	}
	return s
}

func imageFileName(title string, sectionIdx, imageIdx int, asset document.ImageAsset) string {
	return fmt.Sprintf("%s-%d-%d.%s", Slug(title), sectionIdx+1, imageIdx+1, asset.Format)
}

// Markdown renders the artifact as one markdown document. Image assets are
// referenced by the sibling file names WriteFile produces.
func Markdown(art *document.Artifact) string {
	return body(art, func(si, ii int, asset document.ImageAsset) string {
		return imageFileName(art.Title, si, ii, asset)
	})
}

// body assembles the full document in markdown: cover, abstract, outline
// listing, sections with interleaved images, references.
func body(art *document.Artifact, src imageSrc) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", art.Title)
	if art.Author != "" {
		fmt.Fprintf(&sb, "**Author:** %s\n\n", art.Author)
	}
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", art.GeneratedAt.Format("January 2, 2006"))

	if art.Abstract != "" {
		sb.WriteString("## Abstract\n\n")
		sb.WriteString(art.Abstract)
		sb.WriteString("\n\n")
	}

	if len(art.Outline) > 0 {
		sb.WriteString("## Table of Contents\n\n")
		for i, title := range art.Outline {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		}
		sb.WriteString("\n")
	}

	for _, section := range art.Sections {
		fmt.Fprintf(&sb, "## %s\n\n", section.Title)
		for _, block := range section.Blocks {
			writeBlock(&sb, block)
		}
		for i, asset := range section.Images {
			fmt.Fprintf(&sb, "![%s](%s)\n\n", asset.Caption, src(section.Index, i, asset))
			if asset.Caption != "" {
				fmt.Fprintf(&sb, "*Figure: %s*\n\n", asset.Caption)
			}
		}
	}

	if len(art.References) > 0 {
		sb.WriteString("## References\n\n")
		for i, ref := range art.References {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, ref)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeBlock(sb *strings.Builder, block document.ContentBlock) {
	switch block.Kind {
	case document.BlockHeading:
		level := block.Level
		if level < 1 {
			level = 1
		}
		if level > 4 {
			level = 4
		}
		// Section titles occupy level 2; inner headings start below.
		fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", level+2), block.Text)
	case document.BlockBullet:
		fmt.Fprintf(sb, "- %s\n", block.Text)
	case document.BlockNumbered:
		idx := block.Index
		if idx < 1 {
			idx = 1
		}
		fmt.Fprintf(sb, "%d. %s\n", idx, block.Text)
	default:
		sb.WriteString(block.Text)
		sb.WriteString("\n\n")
	}
}

// WriteFile persists the artifact under dir and returns the document path.
// Markdown output writes image assets as sibling files; HTML embeds them.
func WriteFile(art *document.Artifact, dir, format string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	slug := Slug(art.Title)

	switch format {
	case "markdown", "md":
		for _, section := range art.Sections {
			for i, asset := range section.Images {
				name := imageFileName(art.Title, section.Index, i, asset)
				if err := os.WriteFile(filepath.Join(dir, name), asset.Data, 0644); err != nil {
					return "", err
				}
			}
		}
		path := filepath.Join(dir, slug+".md")
		return path, os.WriteFile(path, []byte(Markdown(art)), 0644)
	case "html", "":
		out, err := HTML(art)
		if err != nil {
			return "", err
		}
		path := filepath.Join(dir, slug+".html")
		return path, os.WriteFile(path, []byte(out), 0644)
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
