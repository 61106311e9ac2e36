// Package outline resolves the effective table of contents for a run and
// allocates a word budget per section from the overall page target.
package outline

import (
	"fmt"
	"strings"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

const (
	// MinPages and MaxPages bound the accepted page target.
	MinPages = 5
	MaxPages = 50

	wordsPerPage = 300
	minBudget    = 150
	maxBudget    = 1200
)

// DefaultOutline is used when the project carries no custom outline.
var DefaultOutline = []string{
	"Introduction",
	"Literature Review",
	"Methodology",
	"Results and Analysis",
	"Conclusion",
	"References",
}

// Plan returns the resolved section titles in document order. A custom
// outline is used verbatim, duplicates included; each occurrence becomes its
// own section.
func Plan(spec document.ProjectSpec) ([]string, error) {
	if spec.TargetPages < MinPages || spec.TargetPages > MaxPages {
		return nil, recovery.NewError("outline", recovery.KindStructural,
			fmt.Errorf("target page count %d outside %d-%d", spec.TargetPages, MinPages, MaxPages))
	}

	titles := make([]string, 0, len(spec.CustomOutline))
	for _, t := range spec.CustomOutline {
		t = strings.TrimSpace(t)
		if t != "" {
			titles = append(titles, t)
		}
	}
	if len(spec.CustomOutline) > 0 && len(titles) == 0 {
		return nil, recovery.NewError("outline", recovery.KindStructural,
			fmt.Errorf("custom outline contains no usable section titles"))
	}
	if len(titles) == 0 {
		titles = append(titles, DefaultOutline...)
	}
	return titles, nil
}

// Budget allocates a word target per outline index. The page target is spread
// evenly across non-reference sections; references sections are templated and
// get budget 0.
func Budget(spec document.ProjectSpec, titles []string) ([]int, error) {
	if len(titles) == 0 {
		return nil, recovery.NewError("outline", recovery.KindStructural,
			fmt.Errorf("empty outline"))
	}

	generative := 0
	for _, t := range titles {
		if !document.IsReferences(t) {
			generative++
		}
	}
	if generative == 0 {
		return nil, recovery.NewError("outline", recovery.KindStructural,
			fmt.Errorf("outline has no generative sections"))
	}

	per := spec.TargetPages * wordsPerPage / generative
	if per < minBudget {
		per = minBudget
	}
	if per > maxBudget {
		per = maxBudget
	}

	budgets := make([]int, len(titles))
	for i, t := range titles {
		if !document.IsReferences(t) {
			budgets[i] = per
		}
	}
	return budgets, nil
}
