package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SarthakNawali/ai-word-generator/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the wordgen config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file next to the executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.DefaultConfig().Save(); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("config file:  %s\n", config.ConfigPath())
		fmt.Printf("provider:     %s\n", cfg.AI.Provider)
		fmt.Printf("model:        %s\n", orUnset(cfg.AI.Model))
		fmt.Printf("api key:      %s\n", maskKey(cfg.AI.APIKey))
		fmt.Printf("image search: %s\n", imageSearchSummary(cfg))
		fmt.Printf("output:       %s (%s)\n", cfg.Output.Dir, cfg.Output.Format)
		fmt.Printf("server port:  %d\n", cfg.Server.Port)
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func imageSearchSummary(cfg *config.Config) string {
	if !cfg.ImageSearch.Enabled {
		return "disabled"
	}
	return cfg.ImageSearch.Type
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
