package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SarthakNawali/ai-word-generator/internal/assembler"
	"github.com/SarthakNawali/ai-word-generator/internal/config"
	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/extract"
	"github.com/SarthakNawali/ai-word-generator/internal/images"
	"github.com/SarthakNawali/ai-word-generator/internal/imagesearch"
	"github.com/SarthakNawali/ai-word-generator/internal/logger"
	"github.com/SarthakNawali/ai-word-generator/internal/render"
	"github.com/SarthakNawali/ai-word-generator/internal/textgen"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagTitle == "" || flagDescription == "" {
		return fmt.Errorf("--title and --description are required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec := document.ProjectSpec{
		Title:       flagTitle,
		Author:      flagAuthor,
		Description: flagDescription,
		TargetPages: flagPages,
		ExtraNotes:  flagNotes,
	}
	spec.CustomOutline = append(spec.CustomOutline, flagOutline...)

	for _, path := range flagRefs {
		text, err := extractReference(path)
		if err != nil {
			logger.Warn("skipping reference %s: %v", path, err)
			fmt.Fprintf(os.Stderr, "warning: skipping reference %s: %v\n", path, err)
			continue
		}
		spec.ReferenceTexts = append(spec.ReferenceTexts, text)
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	art, warnings, err := pipeline.Run(context.Background(), spec, func(stage string, sectionIdx int, msg string) {
		if stage == "section" {
			fmt.Printf("  section %d: %s\n", sectionIdx+1, msg)
			return
		}
		fmt.Printf("%s: %s\n", stage, msg)
	})
	if err != nil {
		return err
	}

	format := flagFormat
	if format == "" {
		format = cfg.Output.Format
	}
	path, err := render.WriteFile(art, flagOutDir, format)
	if err != nil {
		return err
	}

	fmt.Printf("\nDocument written to %s\n", path)
	if len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", w)
		}
	}
	return nil
}

func extractReference(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	text, err := extract.PDFExtractor{}.Extract(f, info.Size())
	if err != nil {
		return "", err
	}
	return extract.Clean(text), nil
}

// buildPipeline wires the configured capabilities into an assembler.
func buildPipeline(cfg *config.Config) (*assembler.Assembler, error) {
	provider, err := textgen.New(textgen.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		return nil, err
	}

	var engine imagesearch.Engine = imagesearch.NoopEngine{}
	if cfg.ImageSearch.Enabled {
		engineType := cfg.ImageSearch.Type
		if engineType == "" {
			engineType = "google_cse"
		}
		engine, err = imagesearch.NewRegistry().CreateEngine(imagesearch.EngineConfig{
			Name:    engineType,
			Type:    engineType,
			APIKey:  cfg.ImageSearch.APIKey,
			CSEID:   cfg.ImageSearch.CSEID,
			BaseURL: cfg.ImageSearch.BaseURL,
			Enabled: true,
		})
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("image search disabled, documents will have no images")
	}

	fetcher := images.NewFetcher(images.DefaultLimits())
	return assembler.New(provider, engine, fetcher), nil
}
