package textgen

import (
	"fmt"
	"strings"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
)

// Sampling configuration is fixed per the pipeline design: moderate
// randomness, output bounded relative to the section budget.
const (
	DefaultTemperature = 0.7
	minCompletionTokens = 512
	maxCompletionTokens = 2000
)

// SystemPrompt frames every generation request.
const SystemPrompt = "You are an expert academic writer. Generate high-quality, " +
	"well-structured academic content. Use proper academic language and formatting. " +
	"When creating lists or steps, use bullet points or numbered lists. " +
	"Structure content with clear paragraphs and logical flow."

// TokensFor converts a word budget into a completion token bound.
func TokensFor(budgetWords int) int {
	tokens := budgetWords * 2
	if tokens < minCompletionTokens {
		tokens = minCompletionTokens
	}
	if tokens > maxCompletionTokens {
		tokens = maxCompletionTokens
	}
	return tokens
}

func projectContext(spec document.ProjectSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project Title: %s\n", spec.Title)
	fmt.Fprintf(&sb, "Project Description: %s\n", spec.Description)
	fmt.Fprintf(&sb, "Estimated Pages: %d\n", spec.TargetPages)
	if spec.ExtraNotes != "" {
		fmt.Fprintf(&sb, "Additional Context: %s\n", spec.ExtraNotes)
	}
	// At most two reference excerpts keep the prompt bounded.
	refs := spec.ReferenceTexts
	if len(refs) > 2 {
		refs = refs[:2]
	}
	if len(refs) > 0 {
		sb.WriteString("\nReference Material Context:\n")
		sb.WriteString(strings.Join(refs, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SectionPrompt builds the request for one body section. priorContext is a
// running summary of earlier sections and may be empty for the first one.
func SectionPrompt(spec document.ProjectSpec, title, priorContext string, budgetWords int) Request {
	var sb strings.Builder
	sb.WriteString(projectContext(spec))
	if priorContext != "" {
		sb.WriteString("\nEarlier sections covered:\n")
		sb.WriteString(priorContext)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nWrite a comprehensive academic section titled %q (about %d words) for this project.\n", title, budgetWords)
	sb.WriteString("Structure the content with:\n")
	sb.WriteString("- Clear introduction to the section topic\n")
	sb.WriteString("- Main content with proper paragraphs\n")
	sb.WriteString("- Bullet points or numbered lists where appropriate (objectives, steps, methods)\n")
	sb.WriteString("- Academic language, with placeholder citations [1], [2] where relevant\n")
	sb.WriteString("\nMake it relevant to the project topic and ensure logical flow with earlier sections.\n")

	return Request{
		System:      SystemPrompt,
		Prompt:      sb.String(),
		Temperature: DefaultTemperature,
		MaxTokens:   TokensFor(budgetWords),
	}
}

// AbstractPrompt builds the request for the formal abstract.
func AbstractPrompt(spec document.ProjectSpec) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a formal academic abstract (150-200 words) for a project titled %q.\n", spec.Title)
	fmt.Fprintf(&sb, "Project description: %s\n", spec.Description)
	fmt.Fprintf(&sb, "Target length: %d pages\n\n", spec.TargetPages)
	sb.WriteString("The abstract should include:\n")
	sb.WriteString("- Brief background and context\n")
	sb.WriteString("- Research objectives\n")
	sb.WriteString("- Methodology overview\n")
	sb.WriteString("- Expected outcomes and significance\n")
	sb.WriteString("\nUse formal academic language. Make it concise but comprehensive. Output plain paragraphs only.\n")

	return Request{
		System:      SystemPrompt,
		Prompt:      sb.String(),
		Temperature: DefaultTemperature,
		MaxTokens:   minCompletionTokens,
	}
}

// ReferencesPrompt builds the request for the templated references section.
func ReferencesPrompt(spec document.ProjectSpec) Request {
	var sb strings.Builder
	sb.WriteString(projectContext(spec))
	sb.WriteString("\nGenerate 12-18 realistic academic references for this project topic, in APA style.\n")
	sb.WriteString("Include a mix of:\n")
	sb.WriteString("- Recent journal articles\n")
	sb.WriteString("- Conference papers\n")
	sb.WriteString("- Books and book chapters\n")
	sb.WriteString("- Reputable online resources\n")
	fmt.Fprintf(&sb, "\nMake sure they are relevant to %q. One reference per line, no numbering.\n", spec.Title)

	return Request{
		System:      SystemPrompt,
		Prompt:      sb.String(),
		Temperature: DefaultTemperature,
		MaxTokens:   maxCompletionTokens,
	}
}
