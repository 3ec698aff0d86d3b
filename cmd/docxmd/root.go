package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxmd/internal/config"
)

// Persistent flag variables.
var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docxmd",
	Short: "Recover document structure from .docx files",
	Long: `docxmd reads a Word document, infers headings, lists and bold emphasis
from its formatting, and writes the result as Markdown, HTML or an mdast
JSON tree.

Usage:
  docxmd convert <file.docx> [flags]
  docxmd styles <file.docx>`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given, else returns the defaults.
func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

// newLogger builds the stderr logger. --verbose forces debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Level()
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
