// Package assembler drives one document generation run: outline planning,
// per-section synthesis with image acquisition, and finalization into an
// immutable artifact. All external capabilities are reached through the
// recovery layer; only structural errors abort a run.
package assembler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/images"
	"github.com/SarthakNawali/ai-word-generator/internal/imagesearch"
	"github.com/SarthakNawali/ai-word-generator/internal/logger"
	"github.com/SarthakNawali/ai-word-generator/internal/outline"
	"github.com/SarthakNawali/ai-word-generator/internal/parser"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
	"github.com/SarthakNawali/ai-word-generator/internal/textgen"
)

// FallbackParagraph fills a section whose generation failed terminally.
const FallbackParagraph = "This section could not be generated automatically and requires manual completion."

const (
	// priorContextSnippet bounds how much of each finished section feeds
	// later prompts.
	priorContextSnippet = 300
	priorContextEntries = 6
)

// Progress receives run lifecycle events. sectionIdx is -1 for run-level
// stages ("init", "finalize", "done") and the outline index otherwise.
type Progress func(stage string, sectionIdx int, msg string)

// Assembler holds the capabilities shared across runs. Per-run state (search
// budget, gate, warnings) is created fresh inside Run.
type Assembler struct {
	provider textgen.Provider
	engine   imagesearch.Engine
	fetcher  *images.Fetcher
	policy   recovery.Policy
}

func New(provider textgen.Provider, engine imagesearch.Engine, fetcher *images.Fetcher) *Assembler {
	if engine == nil {
		engine = imagesearch.NoopEngine{}
	}
	return &Assembler{
		provider: provider,
		engine:   engine,
		fetcher:  fetcher,
		policy:   recovery.DefaultPolicy(),
	}
}

// Run executes the full pipeline for one project specification. It returns
// the artifact together with every non-fatal warning collected along the way.
// Only structural failures (bad outline, bad page count) produce an error.
func (a *Assembler) Run(ctx context.Context, spec document.ProjectSpec, progress Progress) (*document.Artifact, []recovery.Warning, error) {
	if progress == nil {
		progress = func(string, int, string) {}
	}

	titles, err := outline.Plan(spec)
	if err != nil {
		return nil, nil, err
	}
	budgets, err := outline.Budget(spec, titles)
	if err != nil {
		return nil, nil, err
	}

	runID := uuid.NewString()
	gate := recovery.NewGate()
	rec := recovery.NewRecorder()
	acquirer := images.NewAcquirer(a.engine, a.fetcher)

	logger.Info("run %s: %d sections, %d target pages", runID, len(titles), spec.TargetPages)
	progress("init", -1, fmt.Sprintf("planned %d sections", len(titles)))

	art := &document.Artifact{
		ID:          runID,
		Title:       spec.Title,
		Author:      spec.Author,
		GeneratedAt: time.Now().UTC(),
		Outline:     titles,
	}

	// Sections run in outline order so each prompt can see what came
	// before; within a section, text and images proceed concurrently.
	var priorParts []string
	for i, title := range titles {
		if document.IsReferences(title) {
			progress("section", i, title)
			if len(art.References) == 0 {
				art.References = a.referenceEntries(ctx, spec, gate, rec)
			}
			continue
		}

		progress("section", i, title)
		priorContext := strings.Join(priorParts, "\n")

		var (
			wg     sync.WaitGroup
			blocks []document.ContentBlock
			assets []document.ImageAsset
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			blocks = a.synthesize(ctx, spec, title, priorContext, budgets[i], gate, rec)
		}()
		go func() {
			defer wg.Done()
			assets = a.acquireImages(ctx, acquirer, spec, title, gate, rec)
		}()
		wg.Wait()

		// Reference entries are hoisted out of the section list, so the
		// section index counts appended sections, not outline positions.
		art.Sections = append(art.Sections, document.Section{
			Title:  title,
			Index:  len(art.Sections),
			Blocks: blocks,
			Images: assets,
		})
		if p := firstParagraph(blocks); p != "" {
			priorParts = append(priorParts, fmt.Sprintf("%s: %s", title, p))
			if len(priorParts) > priorContextEntries {
				priorParts = priorParts[len(priorParts)-priorContextEntries:]
			}
		}
	}

	progress("finalize", -1, "abstract and references")
	art.Abstract = a.abstract(ctx, spec, gate, rec)
	if len(art.References) == 0 {
		art.References = a.referenceEntries(ctx, spec, gate, rec)
	}

	progress("done", -1, fmt.Sprintf("%d sections, %d images, %d words",
		len(art.Sections), art.ImageCount(), art.WordCount()))
	logger.Info("run %s done: %d warnings", runID, len(rec.Warnings()))
	return art, rec.Warnings(), nil
}

// synthesize produces the content blocks for one section. Failures degrade
// to a single fallback paragraph plus a recorded warning.
func (a *Assembler) synthesize(ctx context.Context, spec document.ProjectSpec, title, priorContext string, budget int, gate *recovery.Gate, rec *recovery.Recorder) []document.ContentBlock {
	raw, err := a.complete(ctx, gate, textgen.SectionPrompt(spec, title, priorContext, budget))
	if err != nil {
		rec.Add(title, textgen.Capability, err)
		logger.Warn("section %q: generation failed: %v", title, err)
		return []document.ContentBlock{{Kind: document.BlockParagraph, Text: FallbackParagraph}}
	}
	blocks := parser.Parse(raw)
	if len(blocks) == 0 {
		rec.Add(title, textgen.Capability,
			recovery.NewError(textgen.Capability, recovery.KindValidation, fmt.Errorf("provider returned empty content")))
		return []document.ContentBlock{{Kind: document.BlockParagraph, Text: FallbackParagraph}}
	}
	return blocks
}

// acquireImages fetches up to the per-section cap of validated assets. Any
// failure leaves the section without images; the run continues.
func (a *Assembler) acquireImages(ctx context.Context, acquirer *images.Acquirer, spec document.ProjectSpec, title string, gate *recovery.Gate, rec *recovery.Recorder) []document.ImageAsset {
	if !gate.Open(imagesearch.Capability) {
		return nil
	}
	query := fmt.Sprintf("%s %s diagram illustration", title, spec.Title)
	assets, err := acquirer.Acquire(ctx, query, images.MaxPerCall)
	if err != nil {
		gate.RecordFailure(imagesearch.Capability, err)
		rec.Add(title, imagesearch.Capability, err)
		logger.Warn("section %q: image acquisition failed: %v", title, err)
		return nil
	}
	return assets
}

func (a *Assembler) abstract(ctx context.Context, spec document.ProjectSpec, gate *recovery.Gate, rec *recovery.Recorder) string {
	raw, err := a.complete(ctx, gate, textgen.AbstractPrompt(spec))
	if err != nil {
		rec.Add("Abstract", textgen.Capability, err)
		return fmt.Sprintf("This document presents %s. %s", spec.Title, spec.Description)
	}
	return strings.TrimSpace(raw)
}

// referenceEntries returns the run's reference list: generated APA-style
// entries when the provider is available, placeholders otherwise.
func (a *Assembler) referenceEntries(ctx context.Context, spec document.ProjectSpec, gate *recovery.Gate, rec *recovery.Recorder) []string {
	raw, err := a.complete(ctx, gate, textgen.ReferencesPrompt(spec))
	if err != nil {
		rec.Add("References", textgen.Capability, err)
		return placeholderReferences(spec)
	}
	entries := parseReferenceLines(raw)
	if len(entries) == 0 {
		rec.Add("References", textgen.Capability,
			recovery.NewError(textgen.Capability, recovery.KindValidation, fmt.Errorf("no usable reference entries")))
		return placeholderReferences(spec)
	}
	return entries
}

// complete runs one generation request through the gate and retry policy.
func (a *Assembler) complete(ctx context.Context, gate *recovery.Gate, req textgen.Request) (string, error) {
	if !gate.Open(textgen.Capability) {
		return "", recovery.NewError(textgen.Capability, recovery.KindAuth,
			fmt.Errorf("text generation disabled for this run after credential rejection"))
	}
	var out string
	err := recovery.Do(ctx, a.policy, func(ctx context.Context) error {
		var cerr error
		out, cerr = a.provider.Complete(ctx, req)
		return cerr
	})
	if err != nil {
		// A rejected credential stays rejected; quota can recover between
		// calls, so it degrades that call only.
		if recovery.KindOf(err) == recovery.KindAuth {
			gate.Trip(textgen.Capability, recovery.KindAuth)
		}
		return "", err
	}
	return out, nil
}

func firstParagraph(blocks []document.ContentBlock) string {
	for _, b := range blocks {
		if b.Kind != document.BlockParagraph {
			continue
		}
		text := b.Text
		if len(text) > priorContextSnippet {
			text = text[:priorContextSnippet]
		}
		return text
	}
	return ""
}

// parseReferenceLines turns raw provider output into one entry per line,
// stripping list markers and numbering.
func parseReferenceLines(raw string) []string {
	var entries []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		for i := 0; i < len(line); i++ {
			if line[i] >= '0' && line[i] <= '9' {
				continue
			}
			if (line[i] == '.' || line[i] == ')') && i > 0 {
				line = strings.TrimSpace(line[i+1:])
			}
			break
		}
		// Preamble lines ("Here are 15 references:") and fragments are
		// not entries.
		if len(line) < 20 || strings.HasSuffix(line, ":") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

func placeholderReferences(spec document.ProjectSpec) []string {
	if len(spec.ReferenceTexts) == 0 {
		return []string{"[Reference entries pending manual completion.]"}
	}
	entries := make([]string, 0, len(spec.ReferenceTexts))
	for i := range spec.ReferenceTexts {
		entries = append(entries, fmt.Sprintf("[Uploaded reference document %d: complete this citation manually.]", i+1))
	}
	return entries
}
