// Package gpdf implements grep for PDF documents: it searches a set of
// PDF files for text matching a case-insensitive regular expression and
// reports every occurrence with its page and a window of surrounding text.
//
// # Searching
//
// For one-off searches use the package-level helper:
//
//	results, err := gpdf.Search(ctx, "retention policy", []string{"a.pdf", "b.pdf"})
//
// For repeated searches with the same pattern create a [Searcher]:
//
//	s, err := gpdf.NewSearcher("retention policy", gpdf.WithContextWindow(80))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := s.Search(ctx, paths)
//
// A [ResultSet] preserves file order, then page order, then in-page match
// order. Each [MatchRecord] carries the matched text, the clipped context
// window, and a [Location]: a 1-based page number, or a fractional position
// through the document when the backend cannot report page boundaries.
//
// # Reports
//
// A ResultSet can be rendered into a static HTML index:
//
//	err := gpdf.WriteIndex("results.html", results, gpdf.ReportConfig{
//	    Title:   "audit findings",
//	    Pattern: "retention policy",
//	})
//
// or into a merged PDF containing every matching page behind a clickable
// table of contents:
//
//	m, err := gpdf.NewMerger(gpdf.MergeConfig{Title: "audit findings"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//	m.AddAll(results)
//	pages, err := m.Write(ctx, "summary.pdf")
//
// The contents page is rendered from HTML via headless Chrome; a
// Chrome/Chromium binary must be in PATH, or set
// [MergeConfig].Render.AutoDownload to fetch one automatically.
//
// # Document access
//
// Text extraction and page manipulation are delegated to external PDF
// libraries behind the [Document] interface, so the backend can be swapped
// without touching the pipeline. [Open] returns the default backend.
package gpdf
