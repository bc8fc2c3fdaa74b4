// Package bundle decides where a gpdf run writes its artifacts: flat
// output next to the inputs, a chosen output directory, or the full
// gpdf_report bundle with html/, source/ and summaries/ subdirectories.
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Request captures the output-related CLI flags of one run.
type Request struct {
	HTML      bool   // --html: write an auto-named HTML index
	HTMLPath  string // --html-path
	Merge     bool   // --merge: write an auto-named merged PDF
	MergePath string // --merge-path
	OutputDir string // --output-dir
	CopyPDFs  bool   // --copy-pdfs
	Report    bool   // --report
}

// Layout is the resolved on-disk shape of a run's outputs. Empty path
// fields mean the corresponding artifact was not requested.
type Layout struct {
	OutputDir string // root for artifacts, "" for console-only runs
	HTMLPath  string
	MergePath string
	SourceDir string // where source copies go (equals OutputDir outside report mode)
	CopyPDFs  bool
	Report    bool

	// Link prefixes wired into the HTML index.
	LinkPrefix    string
	SummaryPrefix string
	BackHref      string
}

// ReportDir is the bundle directory created by --report.
const ReportDir = "gpdf_report"

// Resolve maps the request onto concrete paths without touching the
// filesystem, except to probe for free auto-generated names.
func Resolve(req Request, now time.Time) (Layout, error) {
	if req.Report {
		return resolveReport(req, now)
	}

	var l Layout
	htmlRequested := req.HTML || req.HTMLPath != ""
	mergeRequested := req.Merge || req.MergePath != ""

	l.OutputDir = req.OutputDir
	if l.OutputDir == "" && (htmlRequested || mergeRequested) {
		l.OutputDir = "_gpdf_results"
	}
	l.SourceDir = l.OutputDir
	l.CopyPDFs = req.CopyPDFs

	var err error
	if htmlRequested {
		l.HTMLPath, err = resolveOutput(req.HTMLPath, l.OutputDir, "html", now)
		if err != nil {
			return Layout{}, err
		}
	}
	if mergeRequested {
		l.MergePath, err = resolveOutput(req.MergePath, l.OutputDir, "pdf", now)
		if err != nil {
			return Layout{}, err
		}
	}
	return l, nil
}

func resolveReport(req Request, now time.Time) (Layout, error) {
	l := Layout{
		OutputDir:     ReportDir,
		SourceDir:     filepath.Join(ReportDir, "source"),
		CopyPDFs:      true,
		Report:        true,
		LinkPrefix:    "../source/",
		SummaryPrefix: "../summaries/",
		BackHref:      "../index.html",
	}
	var err error
	l.HTMLPath, err = resolveOutput(req.HTMLPath, filepath.Join(ReportDir, "html"), "html", now)
	if err != nil {
		return Layout{}, err
	}
	l.MergePath, err = resolveOutput(req.MergePath, filepath.Join(ReportDir, "summaries"), "pdf", now)
	if err != nil {
		return Layout{}, err
	}
	return l, nil
}

// resolveOutput picks the concrete path for one artifact: an explicit
// path is honored (rebased into dir when one is set), an empty request
// gets an auto-generated name.
func resolveOutput(requested, dir, ext string, now time.Time) (string, error) {
	if requested == "" {
		base := dir
		if base == "" {
			base = "."
		}
		return AutoName(base, ext, now)
	}
	if dir != "" {
		return filepath.Join(dir, filepath.Base(requested)), nil
	}
	return requested, nil
}

// AutoName returns the first free gpdf-YYYY-MM-DD-NNN.ext name in dir.
func AutoName(dir, ext string, now time.Time) (string, error) {
	stamp := now.Format("2006-01-02")
	for i := 1; i < 1000; i++ {
		path := filepath.Join(dir, fmt.Sprintf("gpdf-%s-%03d.%s", stamp, i, ext))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("bundle: no free output name under %s", dir)
}

// EnsureDirs creates every directory the layout writes into.
func (l Layout) EnsureDirs() error {
	dirs := []string{}
	if l.OutputDir != "" {
		dirs = append(dirs, l.OutputDir)
	}
	for _, p := range []string{l.HTMLPath, l.MergePath} {
		if p != "" {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	if l.CopyPDFs && l.SourceDir != "" {
		dirs = append(dirs, l.SourceDir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// CopySources copies each source file into dstDir under its base name.
// A source that already is its own destination is left alone.
func CopySources(dstDir string, sources []string) error {
	for _, src := range sources {
		dst := filepath.Join(dstDir, filepath.Base(src))
		srcAbs, err1 := filepath.Abs(src)
		dstAbs, err2 := filepath.Abs(dst)
		if err1 == nil && err2 == nil && srcAbs == dstAbs {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
