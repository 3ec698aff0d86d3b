package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxmd"
	"github.com/tsawler/docxmd/layout"
)

var stylesCmd = &cobra.Command{
	Use:   "styles <file.docx>",
	Short: "Show how paragraph formatting clusters were scored",
	Long: `Styles groups the document's paragraphs by formatting, prints each
cluster's title, heading and paragraph scores, and marks the clusters chosen
as body text, h1 and h2.

Only paragraphs with explicit paragraph-level run properties take part.`,
	Args: cobra.ExactArgs(1),
	RunE: runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := docxmd.Open(args[0]).
		PreMerge(*cfg.PreMerge).
		Normalize(*cfg.Normalize).
		Logger(newLogger(cfg)).
		Styles()
	if err != nil {
		return err
	}

	return writeStyleReport(cmd.OutOrStdout(), report)
}

func writeStyleReport(w io.Writer, report *docxmd.StyleReport) error {
	if len(report.Clusters) == 0 {
		_, err := fmt.Fprintln(w, "no paragraphs with formatting signatures")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSIZE\tBOLD\tUNDERLINE\tALIGN\tMATCHES\tWORDS\tTITLE\tHEADING\tPARAGRAPH\tROLE")
	for i, s := range report.Clusters {
		k := s.Cluster.Key
		size := "-"
		if k.HasFontSize {
			size = strconv.Itoa(k.FontSize)
		}
		align := k.JustifyClass
		if align == "" {
			align = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%t\t%t\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			i+1, size, k.IsBold, k.IsUnderlined, align,
			len(s.Cluster.Matches), s.WordCount,
			s.TitleScore, s.HeadingScore, s.ParagraphScore,
			role(report.Prediction, s.Cluster))
	}
	return tw.Flush()
}

func role(p layout.StylePrediction, c *layout.StyleCluster) string {
	switch c {
	case p.Paragraph:
		return "paragraph"
	case p.H1:
		return "h1"
	case p.H2:
		return "h2"
	}
	return "-"
}
