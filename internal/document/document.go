// Package document defines the data model shared by the assembly pipeline:
// the project specification, typed content blocks, image assets, and the
// final artifact one run produces.
package document

import (
	"strings"
	"time"
)

// ProjectSpec is the immutable input of one generation run.
type ProjectSpec struct {
	Title          string
	Author         string
	Description    string
	TargetPages    int
	CustomOutline  []string // empty means "use the default outline"
	ReferenceTexts []string // plain text extracted from uploaded material
	ExtraNotes     string
}

// BlockKind tags a ContentBlock variant.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
	BlockNumbered
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	case BlockNumbered:
		return "numbered"
	default:
		return "paragraph"
	}
}

// ContentBlock is one structural unit of generated text. Level is set for
// headings, Index for numbered items; both are zero otherwise.
type ContentBlock struct {
	Kind  BlockKind
	Level int
	Index int
	Text  string
}

// ImageFormat is the validated encoding of an ImageAsset.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
)

// ImageAsset is one downloaded, validated, size-normalized image. Assets are
// only built by the image fetcher; an asset that exists is within limits.
type ImageAsset struct {
	Query   string
	Data    []byte
	Format  ImageFormat
	Width   int
	Height  int
	Caption string
}

// Section is one generated document section in outline order.
type Section struct {
	Title  string
	Index  int
	Blocks []ContentBlock
	Images []ImageAsset
}

// IsReferences reports whether the section title names a references section,
// which is templated rather than budgeted for generation.
func IsReferences(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	return t == "references" || t == "bibliography"
}

// Artifact is the write-once output of a completed run.
type Artifact struct {
	ID          string
	Title       string
	Author      string
	GeneratedAt time.Time
	Abstract    string
	Outline     []string
	Sections    []Section
	References  []string
}

// ImageCount returns the total number of image assets across all sections.
func (a *Artifact) ImageCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Images)
	}
	return n
}

// WordCount returns the total number of words in all content blocks.
func (a *Artifact) WordCount() int {
	n := 0
	for _, s := range a.Sections {
		for _, b := range s.Blocks {
			n += len(strings.Fields(b.Text))
		}
	}
	return n
}
