// gpdf is grep for PDF documents.
//
// Usage:
//
//	gpdf [flags] PATTERN [PATH...]
//
// PATTERN is a case-insensitive regular expression. PATH arguments are
// PDF files or directories; without any, the PDFs of the current
// directory are searched. Matches print to the console; --html, --merge
// and --report additionally produce an HTML index, a merged PDF of the
// matching pages, and a self-contained report bundle.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/porticus-lab/gpdf"
	"github.com/porticus-lab/gpdf/internal/bundle"
)

var matchColor = color.New(color.FgRed)

type cliFlags struct {
	contextWindow int
	html          bool
	htmlPath      string
	merge         bool
	mergePath     string
	outputDir     string
	copyPDFs      bool
	report        bool
	name          string
	chromePath    string
	autoDownload  bool
	noSandbox     bool
	noColor       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		code := 1
		var patternErr *gpdf.PatternError
		if errors.As(err, &patternErr) {
			code = 2
		}
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "gpdf [flags] PATTERN [PATH...]",
		Short:         "grep for PDF documents",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnv(cmd, &flags)
			return run(cmd.Context(), flags, args[0], args[1:])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.contextWindow, "context", "c", gpdf.DefaultContextWindow, "context window size")
	f.BoolVar(&flags.html, "html", false, "write an HTML index with an auto-generated name")
	f.StringVar(&flags.htmlPath, "html-path", "", "write the HTML index to this path")
	f.BoolVarP(&flags.merge, "merge", "m", false, "write a merged PDF with an auto-generated name")
	f.StringVar(&flags.mergePath, "merge-path", "", "write the merged PDF to this path")
	f.StringVar(&flags.outputDir, "output-dir", "", "directory for outputs and optional copies")
	f.BoolVar(&flags.copyPDFs, "copy-pdfs", false, "copy matched source PDFs into the output directory")
	f.BoolVar(&flags.report, "report", false, "create a gpdf_report bundle with html/source/summaries")
	f.StringVar(&flags.name, "name", "", "title for the HTML report")
	f.StringVar(&flags.chromePath, "chrome", "", "Chrome/Chromium executable for the merged-PDF contents page")
	f.BoolVar(&flags.autoDownload, "auto-download-browser", false, "download Chromium when no browser is installed")
	f.BoolVar(&flags.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (required as root)")
	f.BoolVar(&flags.noColor, "no-color", false, "disable match highlighting")

	return cmd
}

// applyEnv lets GPDF_* environment variables supply defaults for flags
// the user did not set explicitly.
func applyEnv(cmd *cobra.Command, flags *cliFlags) {
	v := viper.New()
	v.SetEnvPrefix("GPDF")
	v.AutomaticEnv()

	if !cmd.Flags().Changed("context") && v.IsSet("context") {
		flags.contextWindow = v.GetInt("context")
	}
	if !cmd.Flags().Changed("output-dir") && v.IsSet("output_dir") {
		flags.outputDir = v.GetString("output_dir")
	}
	if !cmd.Flags().Changed("chrome") && v.IsSet("chrome") {
		flags.chromePath = v.GetString("chrome")
	}
}

func run(ctx context.Context, flags cliFlags, pattern string, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.noColor {
		color.NoColor = true
	}

	// Matches stream to the console as each file is scanned rather than
	// after the whole batch.
	searcher, err := gpdf.NewSearcher(pattern,
		gpdf.WithContextWindow(flags.contextWindow),
		gpdf.WithWarnWriter(os.Stderr),
		gpdf.WithMatchHandler(printRecord),
	)
	if err != nil {
		return err
	}

	layout, err := bundle.Resolve(bundle.Request{
		HTML:      flags.html,
		HTMLPath:  flags.htmlPath,
		Merge:     flags.merge,
		MergePath: flags.mergePath,
		OutputDir: flags.outputDir,
		CopyPDFs:  flags.copyPDFs,
		Report:    flags.report,
	}, time.Now())
	if err != nil {
		return err
	}

	inputs, err := gpdf.CollectInputs(args, os.Stderr)
	if err != nil {
		return err
	}
	inputs = gpdf.ExcludePaths(inputs, []string{layout.HTMLPath, layout.MergePath})
	if len(inputs) == 0 {
		return errors.New("no PDF files found")
	}

	results, err := searcher.Search(ctx, inputs)
	if err != nil {
		return err
	}

	if results.Len() == 0 {
		return nil
	}
	if layout.HTMLPath == "" && layout.MergePath == "" && !layout.CopyPDFs {
		return nil
	}
	if err := layout.EnsureDirs(); err != nil {
		return err
	}

	title := flags.name
	if title == "" {
		title = defaultTitle(layout)
	}

	// Artifact failures are reported but do not abort the rest of the
	// run: console output already happened and the other artifacts can
	// still be produced.
	var summaryPages map[gpdf.PageKey]int
	if layout.MergePath != "" {
		summaryPages = writeMerged(ctx, flags, layout, title, results)
	}
	if layout.HTMLPath != "" {
		writeHTML(layout, title, pattern, summaryPages, results)
	}
	if layout.CopyPDFs && layout.SourceDir != "" {
		if err := bundle.CopySources(layout.SourceDir, results.Sources()); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: copying sources: %v\n", err)
		}
	}
	return nil
}

func printRecord(rec gpdf.MatchRecord) {
	fmt.Printf("%s:%s: %s%s%s\n",
		filepath.Base(rec.SourcePath),
		rec.Location,
		rec.Before, matchColor.Sprint(rec.Match), rec.After,
	)
}

func writeMerged(ctx context.Context, flags cliFlags, layout bundle.Layout, title string, results *gpdf.ResultSet) map[gpdf.PageKey]int {
	merger, err := gpdf.NewMerger(gpdf.MergeConfig{
		Title: title,
		Render: gpdf.RenderConfig{
			ChromePath:   flags.chromePath,
			AutoDownload: flags.autoDownload,
			NoSandbox:    flags.noSandbox,
		},
		Warn: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return nil
	}
	defer merger.Close()

	merger.AddAll(results)
	pages, err := merger.Write(ctx, layout.MergePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return nil
	}
	fmt.Printf("Merged PDF written to %s\n", layout.MergePath)
	return pages
}

func writeHTML(layout bundle.Layout, title, pattern string, summaryPages map[gpdf.PageKey]int, results *gpdf.ResultSet) {
	cfg := gpdf.ReportConfig{
		Title:      title,
		Pattern:    pattern,
		LinkPrefix: layout.LinkPrefix,
		BackHref:   layout.BackHref,
	}
	if summaryPages != nil {
		cfg.SummaryName = filepath.Base(layout.MergePath)
		cfg.SummaryPrefix = layout.SummaryPrefix
		cfg.SummaryPages = summaryPages
	}
	if err := gpdf.WriteIndex(layout.HTMLPath, results, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return
	}
	fmt.Printf("HTML index written to %s\n", layout.HTMLPath)

	if layout.OutputDir != "" {
		if err := gpdf.WriteReportsIndex(layout.OutputDir, title); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
	}
}

// defaultTitle mirrors the report heading the bundle mode picks when no
// --name is given: the name of the directory the report lives in.
func defaultTitle(layout bundle.Layout) string {
	if !layout.Report {
		return "gpdf results"
	}
	abs, err := filepath.Abs(layout.OutputDir)
	if err != nil {
		return "gpdf report"
	}
	return filepath.Base(filepath.Dir(abs))
}
