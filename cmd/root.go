package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SarthakNawali/ai-word-generator/internal/config"
	"github.com/SarthakNawali/ai-word-generator/internal/logger"
)

var (
	logLevel string
	logFile  string

	flagTitle       string
	flagAuthor      string
	flagDescription string
	flagPages       int
	flagOutline     []string
	flagNotes       string
	flagRefs        []string
	flagOutDir      string
	flagFormat      string
	flagProvider    string
	flagModel       string
	flagAPIKey      string
	flagNoImages    bool
)

var rootCmd = &cobra.Command{
	Use:   "wordgen",
	Short: "AI academic document generator",
	Long: `wordgen assembles a complete academic document from a short project
description: planned outline, generated sections, related images, abstract
and references, rendered to a single HTML or markdown file.

Modes:
  wordgen           Generate one document from flags
  wordgen serve     Run the web form and job API`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runGenerate,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		if logFile != "" {
			return logger.SetFile(logFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to a file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "",
		"Text provider override: groq, openai, gemini, anthropic, mock")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "",
		"Model override for the text provider")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "",
		"API key override for the text provider")

	rootCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Project title (required)")
	rootCmd.Flags().StringVarP(&flagAuthor, "author", "a", "", "Author name for the cover block")
	rootCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Project description (required)")
	rootCmd.Flags().IntVarP(&flagPages, "pages", "p", 10, "Target page count (5-50)")
	rootCmd.Flags().StringSliceVar(&flagOutline, "outline", nil,
		"Custom section titles in order (comma-separated); blank uses the default outline")
	rootCmd.Flags().StringVar(&flagNotes, "notes", "", "Additional context for generation")
	rootCmd.Flags().StringSliceVar(&flagRefs, "refs", nil, "Reference PDF files to extract context from")
	rootCmd.Flags().StringVarP(&flagOutDir, "out", "o", ".", "Output directory")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "html", "Output format: html, markdown")
	rootCmd.Flags().BoolVar(&flagNoImages, "no-images", false, "Skip image search and embedding")
}

// loadConfig reads the config file and applies provider flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagProvider != "" {
		cfg.AI.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.AI.Model = flagModel
	}
	if flagAPIKey != "" {
		cfg.AI.APIKey = flagAPIKey
	}
	if flagNoImages {
		cfg.ImageSearch.Enabled = false
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
