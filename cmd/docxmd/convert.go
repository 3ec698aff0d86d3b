package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxmd"
	"github.com/tsawler/docxmd/internal/config"
	"github.com/tsawler/docxmd/render"
)

// Flag variables.
var (
	flagFormat       string
	flagOut          string
	flagHeadings     string
	flagListStyle    string
	flagNoPreMerge   bool
	flagResolveLinks bool
	flagFrontMatter  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.docx>",
	Short: "Convert a DOCX file to Markdown, HTML or JSON",
	Long: `Convert maps the document's paragraphs, promotes headings and lists,
merges bold runs and writes the result.

Flags override values from --config.

Examples:
  docxmd convert report.docx
  docxmd convert report.docx --format html --out report.html
  docxmd convert report.docx --headings classifier --front-matter
  docxmd convert report.docx --out ./out/`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&flagFormat, "format", "f", "markdown", "Output format: markdown, html or json")
	convertCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file or directory (default: stdout)")
	convertCmd.Flags().StringVar(&flagHeadings, "headings", "auto", "Heading strategy: auto, classifier, style or none")
	convertCmd.Flags().StringVar(&flagListStyle, "list-style", "ListParagraph", "Paragraph style ID of list items")
	convertCmd.Flags().BoolVar(&flagNoPreMerge, "no-premerge", false, "Do not merge bold runs while mapping")
	convertCmd.Flags().BoolVar(&flagResolveLinks, "resolve-links", false, "Use hyperlink targets from the document relationships")
	convertCmd.Flags().BoolVar(&flagFrontMatter, "front-matter", false, "Prepend metadata as YAML front matter (markdown)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyConvertFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := render.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	conv, err := newConverter(input, cfg)
	if err != nil {
		return err
	}
	if cfg.FrontMatter {
		conv = conv.FrontMatter()
	}

	if flagOut == "" {
		return conv.Render(cmd.OutOrStdout(), renderer)
	}

	path := outputPath(input, flagOut, renderer.Extension())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := conv.Render(f, renderer); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}

// applyConvertFlags copies explicitly set flags over the file config.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("headings") {
		cfg.Headings = flagHeadings
	}
	if flags.Changed("list-style") {
		cfg.ListStyle = flagListStyle
	}
	if flags.Changed("no-premerge") {
		on := !flagNoPreMerge
		cfg.PreMerge = &on
	}
	if flags.Changed("resolve-links") {
		cfg.ResolveLinks = flagResolveLinks
	}
	if flags.Changed("front-matter") {
		cfg.FrontMatter = flagFrontMatter
	}
}

// newConverter builds a configured converter for input.
func newConverter(input string, cfg *config.Config) (*docxmd.Converter, error) {
	strategy, err := docxmd.ParseHeadingStrategy(cfg.Headings)
	if err != nil {
		return nil, err
	}

	conv := docxmd.Open(input).
		Headings(strategy).
		ListStyle(cfg.ListStyle).
		PreMerge(*cfg.PreMerge).
		Normalize(*cfg.Normalize).
		Logger(newLogger(cfg))
	if cfg.ResolveLinks {
		conv = conv.ResolveLinks()
	}
	return conv, nil
}

// outputPath returns out, or a file inside it named after input when out
// is a directory (an existing one, or any path ending in a separator).
func outputPath(input, out, ext string) string {
	isDir := strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(os.PathSeparator))
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		isDir = true
	}
	if !isDir {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(out, base+ext)
}
