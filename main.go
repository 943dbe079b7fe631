package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"decktint/config"
	"decktint/logger"
)

var (
	configDir  string
	verbose    bool
	appVersion = "0.3.1"
)

var rootCmd = &cobra.Command{
	Use:   "decktint",
	Short: "decktint - recolor PowerPoint presentations",
	Long: "Decktint rewrites theme color references inside PowerPoint packages.\n" +
		"It swaps scheme color slots across slides, layouts, masters and themes\n" +
		"while leaving every other byte of the package untouched.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Configure(verbose)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage decktint configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default decktint.config file in the specified directory (or current directory if not specified).",
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", wd, "Directory holding decktint.config (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dirAbs, err := filepath.Abs(configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfgPath := filepath.Join(dirAbs, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(dirAbs, config.Default()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Generated default config file: %s\n", cfgPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
