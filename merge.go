package gpdf

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// MergeState tracks a [Merger] through its lifecycle. The terminal states
// are StateWritten and StateFailed.
type MergeState int

const (
	StateAccumulating MergeState = iota
	StateFinalizing
	StateWritten
	StateFailed
)

func (s MergeState) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateFinalizing:
		return "finalizing"
	case StateWritten:
		return "written"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// MergeConfig controls merged-PDF generation.
type MergeConfig struct {
	// Title is the contents page heading. Empty means "Contents".
	Title string

	// Render configures the headless-Chrome renderer for the contents
	// page.
	Render RenderConfig

	// Warn receives page-copy warnings. Nil discards them.
	Warn io.Writer
}

// Merger builds a PDF containing every matching page behind a clickable
// table of contents. Pages are staged with [Merger.Add] (or
// [Merger.AddAll]) and the final document is produced by [Merger.Write].
//
// A failed page copy is reported and skipped; the merge continues with
// the remaining pages. Only finalization failures are terminal.
type Merger struct {
	cfg     MergeConfig
	conf    *model.Configuration
	tmpDir  string
	state   MergeState
	entries []*tocEntry

	// renderTOC is swapped out by tests to avoid the Chrome dependency.
	renderTOC func(ctx context.Context, html string) ([]byte, error)
}

// tocEntry is one staged page and its slot in the final document.
type tocEntry struct {
	title      string
	sourcePath string
	sourcePage int
	tempFile   string
	mergedPage int // 1-based page number in the final document
}

// NewMerger creates a Merger in the accumulating state. Call
// [Merger.Close] to release the staging directory.
func NewMerger(cfg MergeConfig) (*Merger, error) {
	if cfg.Title == "" {
		cfg.Title = "Contents"
	}
	if cfg.Warn == nil {
		cfg.Warn = io.Discard
	}
	tmpDir, err := os.MkdirTemp("", "gpdf-merge-*")
	if err != nil {
		return nil, fmt.Errorf("gpdf: creating staging directory: %w", err)
	}
	m := &Merger{
		cfg:    cfg,
		conf:   model.NewDefaultConfiguration(),
		tmpDir: tmpDir,
	}
	m.renderTOC = func(ctx context.Context, html string) ([]byte, error) {
		return renderPage(ctx, html, cfg.Render)
	}
	return m, nil
}

// State returns the current lifecycle state.
func (m *Merger) State() MergeState {
	return m.state
}

// Close removes the staging directory. It does not touch a document
// already written.
func (m *Merger) Close() error {
	return os.RemoveAll(m.tmpDir)
}

// Add stages one page of a source document. A page that cannot be
// extracted yields a *PageCopyError and leaves the Merger accumulating.
func (m *Merger) Add(ref PageRef) error {
	if m.state != StateAccumulating {
		return fmt.Errorf("gpdf: merger is %s, not accumulating", m.state)
	}
	tempFile := filepath.Join(m.tmpDir, fmt.Sprintf("page-%04d.pdf", len(m.entries)))
	sel := []string{strconv.Itoa(ref.Page)}
	if err := api.TrimFile(ref.SourcePath, tempFile, sel, m.conf); err != nil {
		return &PageCopyError{Source: ref.SourcePath, Page: ref.Page, Err: err}
	}

	// The source label is informational; losing it is not worth losing
	// the page.
	if err := m.stampSourceLabel(tempFile, ref); err != nil {
		fmt.Fprintf(m.cfg.Warn, "WARN: labeling page %d of %s: %v\n", ref.Page, ref.SourcePath, err)
	}

	m.entries = append(m.entries, &tocEntry{
		title:      ref.Title,
		sourcePath: ref.SourcePath,
		sourcePage: ref.Page,
		tempFile:   tempFile,
	})
	return nil
}

// AddAll stages every matched page of the result set in order, reporting
// failed pages to the warning writer and continuing.
func (m *Merger) AddAll(results *ResultSet) {
	for _, ref := range results.MatchedPages() {
		if err := m.Add(ref); err != nil {
			fmt.Fprintf(m.cfg.Warn, "WARN: %v\n", err)
		}
	}
}

// stampSourceLabel writes "Source: file.pdf page N" into the top-left
// corner of the staged page.
func (m *Merger) stampSourceLabel(path string, ref PageRef) error {
	label := fmt.Sprintf("Source: %s page %d", filepath.Base(ref.SourcePath), ref.Page)
	wm, err := api.TextWatermark(label,
		"fontname:Helvetica, points:9, position:tl, offset:10 -12, scale:1 abs, rotation:0, fillcolor:#444444",
		true, false, types.POINTS)
	if err != nil {
		return err
	}
	return api.AddWatermarksFile(path, "", nil, wm, m.conf)
}

// Write finalizes the merge: it renders the contents page, concatenates
// it with the staged pages, and adds outline bookmarks and link
// annotations. On success the Merger is in StateWritten and the returned
// map gives the merged page number for every included source page; any
// failure is a *WriteError and leaves the Merger in StateFailed.
func (m *Merger) Write(ctx context.Context, outPath string) (map[PageKey]int, error) {
	if m.state != StateAccumulating {
		return nil, fmt.Errorf("gpdf: merger is %s, not accumulating", m.state)
	}
	m.state = StateFinalizing

	fail := func(err error) (map[PageKey]int, error) {
		m.state = StateFailed
		return nil, &WriteError{Path: outPath, Err: err}
	}

	if len(m.entries) == 0 {
		return fail(errors.New("no pages to merge"))
	}
	if len(m.entries) > tocRowCapacity {
		fmt.Fprintf(m.cfg.Warn, "WARN: contents page lists the first %d of %d pages\n",
			tocRowCapacity, len(m.entries))
	}

	// The contents page becomes page 1.
	for i, e := range m.entries {
		e.mergedPage = i + 2
	}

	tocHTML, err := m.contentsHTML()
	if err != nil {
		return fail(err)
	}
	tocPDF, err := m.renderTOC(ctx, tocHTML)
	if err != nil {
		return fail(err)
	}
	tocFile := filepath.Join(m.tmpDir, "contents.pdf")
	if err := os.WriteFile(tocFile, tocPDF, 0o644); err != nil {
		return fail(err)
	}

	inFiles := make([]string, 0, len(m.entries)+1)
	inFiles = append(inFiles, tocFile)
	for _, e := range m.entries {
		inFiles = append(inFiles, e.tempFile)
	}
	if err := api.MergeCreateFile(inFiles, outPath, false, m.conf); err != nil {
		return fail(err)
	}
	if err := m.annotate(outPath); err != nil {
		return fail(err)
	}
	if err := m.bookmark(outPath); err != nil {
		return fail(err)
	}

	m.state = StateWritten
	pages := make(map[PageKey]int, len(m.entries))
	for _, e := range m.entries {
		pages[PageKey{Path: e.sourcePath, Page: e.sourcePage}] = e.mergedPage
	}
	return pages, nil
}

// annotate adds the link annotations. Every merged page gets a link back
// to its source file over the stamped label; the contents page gets an
// internal jump and an external source link per row, for as many rows as
// fit on it.
func (m *Merger) annotate(outPath string) error {
	anns := make(map[int][]model.AnnotationRenderer)

	for i, e := range m.entries {
		uri, err := sourceURI(e.sourcePath, e.sourcePage)
		if err != nil {
			return err
		}

		anns[e.mergedPage] = append(anns[e.mergedPage],
			uriLink(*types.NewRectangle(10, tocPageHeightPt-40, 360, tocPageHeightPt-10), uri),
		)
		if i >= tocRowCapacity {
			continue
		}

		// Mirror the fixed CSS layout of the contents page. PDF
		// coordinates grow upward from the bottom-left corner.
		top := tocRowsTopPt + float64(i)*tocRowHeightPt
		lly := tocPageHeightPt - top - tocRowHeightPt
		ury := tocPageHeightPt - top

		anns[1] = append(anns[1],
			gotoLink(*types.NewRectangle(tocPageLinkPt, lly, tocSourceLinkPt-8, ury), e.mergedPage),
			uriLink(*types.NewRectangle(tocSourceLinkPt, lly, tocRightPt, ury), uri),
		)
	}

	return api.AddAnnotationsMapFile(outPath, "", anns, m.conf, false)
}

// bookmark writes the document outline, one entry per merged page.
func (m *Merger) bookmark(outPath string) error {
	bms := make([]pdfcpu.Bookmark, 0, len(m.entries))
	for _, e := range m.entries {
		bms = append(bms, pdfcpu.Bookmark{
			Title:    fmt.Sprintf("%s - page %d", e.title, e.sourcePage),
			PageFrom: e.mergedPage,
		})
	}
	return api.AddBookmarksFile(outPath, "", bms, true, m.conf)
}

func gotoLink(rect types.Rectangle, pageNr int) model.AnnotationRenderer {
	dest := &model.Destination{Typ: model.DestFit, PageNr: pageNr}
	return model.NewLinkAnnotation(rect, 0, "", "", "", 0, nil, dest, "", nil, false, 0, model.BSSolid)
}

func uriLink(rect types.Rectangle, uri string) model.AnnotationRenderer {
	return model.NewLinkAnnotation(rect, 0, "", "", "", 0, nil, nil, uri, nil, false, 0, model.BSSolid)
}

// sourceURI builds a file URI targeting one page of a source document.
func sourceURI(path string, page int) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("file://%s#page=%d", filepath.ToSlash(abs), page), nil
}

type tocRowView struct {
	TopPt float64
	Label string
}

type tocView struct {
	Title string
	Rows  []tocRowView
}

// contentsHTML lays the table of contents out at the fixed geometry the
// annotation rectangles assume.
func (m *Merger) contentsHTML() (string, error) {
	view := tocView{Title: m.cfg.Title}
	for i, e := range m.entries {
		if i >= tocRowCapacity {
			break
		}
		view.Rows = append(view.Rows, tocRowView{
			TopPt: tocRowsTopPt + float64(i)*tocRowHeightPt,
			Label: fmt.Sprintf("%s - page %d", e.title, e.sourcePage),
		})
	}
	var b strings.Builder
	if err := tocTemplate.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}

var tocTemplate = template.Must(template.New("toc").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<style>
@page { size: 595pt 842pt; margin: 0; }
body {
  margin: 0;
  width: 595pt;
  height: 842pt;
  background: #fffaf2;
  color: #2a2a2a;
  font-family: "Iowan Old Style", "Palatino Linotype", "Book Antiqua", Palatino, serif;
}
.heading { position: absolute; left: 48pt; top: 36pt; font-size: 18pt; }
.row { position: absolute; height: 22pt; line-height: 22pt; font-size: 10pt; }
.row .label { position: absolute; left: 48pt; width: 360pt; overflow: hidden; white-space: nowrap; }
.row .page { position: absolute; left: 420pt; color: #2b5c7d; }
.row .source { position: absolute; left: 478pt; color: #2b5c7d; }
</style>
</head>
<body>
<div class="heading">{{.Title}}</div>
{{range .Rows}}<div class="row" style="top: {{.TopPt}}pt">
<span class="label">{{.Label}}</span><span class="page">page</span><span class="source">source</span>
</div>
{{end}}</body>
</html>
`))
