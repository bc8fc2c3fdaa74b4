package gpdf

import (
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ReportConfig controls HTML index generation. The zero value produces a
// standalone index titled "gpdf results" with source links relative to
// the index file.
type ReportConfig struct {
	// Title is the report heading. Empty means "gpdf results".
	Title string

	// Pattern is recorded in a <meta name="gpdf-pattern"> tag so the
	// reports index can recover it later.
	Pattern string

	// LinkPrefix is prepended to source file names in links, e.g.
	// "../source/" inside a report bundle.
	LinkPrefix string

	// SummaryName is the file name of the merged PDF, when one was
	// written. Rows whose page appears in SummaryPages get a link to
	// SummaryPrefix+SummaryName+"#page=N".
	SummaryName   string
	SummaryPrefix string
	SummaryPages  map[PageKey]int

	// BackHref, when set, renders a link back to the reports index.
	BackHref string
}

type reportLink struct {
	Href  string
	Label string
}

type reportRow struct {
	File     string
	Location string
	Context  template.HTML
	Links    []reportLink
}

type reportData struct {
	Title    string
	Pattern  string
	BackHref string
	Rows     []reportRow
}

// WriteIndex renders the result set into a static HTML index at path, one
// row per record in result order. A path that cannot be created yields a
// *WriteError.
func WriteIndex(path string, results *ResultSet, cfg ReportConfig) error {
	if cfg.Title == "" {
		cfg.Title = "gpdf results"
	}

	data := reportData{
		Title:    cfg.Title,
		Pattern:  cfg.Pattern,
		BackHref: cfg.BackHref,
	}
	for _, rec := range results.Records() {
		name := filepath.Base(rec.SourcePath)
		row := reportRow{
			File:     name,
			Location: rec.Location.String(),
			Context:  highlightContext(rec),
			Links: []reportLink{
				{Href: cfg.LinkPrefix + name, Label: "source"},
			},
		}
		if page, ok := rec.Location.Page(); ok && cfg.SummaryName != "" {
			if merged, ok := cfg.SummaryPages[PageKey{Path: rec.SourcePath, Page: page}]; ok {
				row.Links = append(row.Links, reportLink{
					Href:  fmt.Sprintf("%s%s#page=%d", cfg.SummaryPrefix, cfg.SummaryName, merged),
					Label: "summary",
				})
			}
		}
		data.Rows = append(data.Rows, row)
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := indexTemplate.Execute(f, data); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// highlightContext escapes the context window and wraps the matched text
// in <strong>.
func highlightContext(rec MatchRecord) template.HTML {
	return template.HTML(
		template.HTMLEscapeString(rec.Before) +
			"<strong>" + template.HTMLEscapeString(rec.Match) + "</strong>" +
			template.HTMLEscapeString(rec.After))
}

var patternMetaRe = regexp.MustCompile(`<meta name="gpdf-pattern" content="([^"]*)"\s*/?>`)

// WriteReportsIndex writes dir/index.html listing every report already in
// dir (or dir/html when present), recovering each report's pattern from
// its gpdf-pattern meta tag.
func WriteReportsIndex(dir, title string) error {
	scanDir := dir
	linkPrefix := ""
	if stat, err := os.Stat(filepath.Join(dir, "html")); err == nil && stat.IsDir() {
		scanDir = filepath.Join(dir, "html")
		linkPrefix = "html/"
	}

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}

	var data reportsIndexData
	data.Title = title
	if data.Title == "" {
		data.Title = "gpdf reports"
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "index.html" || !strings.EqualFold(filepath.Ext(name), ".html") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pattern := reportPattern(filepath.Join(scanDir, name))
		data.Rows = append(data.Rows, reportsIndexRow{
			Name:    name,
			Href:    linkPrefix + name,
			Pattern: pattern,
		})
	}

	out := filepath.Join(dir, "index.html")
	f, err := os.Create(out)
	if err != nil {
		return &WriteError{Path: out, Err: err}
	}
	if err := reportsIndexTemplate.Execute(f, data); err != nil {
		f.Close()
		return &WriteError{Path: out, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: out, Err: err}
	}
	return nil
}

// reportPattern reads the head of a report file and recovers the pattern
// it was generated from.
func reportPattern(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown pattern"
	}
	defer f.Close()

	head := make([]byte, 4096)
	n, _ := f.Read(head)
	m := patternMetaRe.FindSubmatch(head[:n])
	if m == nil {
		return "unknown pattern"
	}
	return html.UnescapeString(string(m[1]))
}

type reportsIndexRow struct {
	Name    string
	Href    string
	Pattern string
}

type reportsIndexData struct {
	Title string
	Rows  []reportsIndexRow
}

// reportStyle is shared by the match index and the reports index.
const reportStyle = `
body {
  margin: 0;
  background: #f5f1ea;
  color: #2a2a2a;
  font-family: "Iowan Old Style", "Palatino Linotype", "Book Antiqua", Palatino, serif;
}
.wrap { max-width: 1100px; margin: 32px auto 48px; padding: 0 24px; }
.header {
  background: #fffaf2;
  border: 1px solid #e6dccb;
  border-radius: 14px;
  padding: 18px 20px;
  box-shadow: 0 6px 16px rgba(80, 64, 32, 0.08);
}
.header-top { display: flex; justify-content: space-between; align-items: baseline; gap: 12px; }
.back-link { font-size: 12px; color: #2b5c7d; }
.title { font-size: 24px; margin: 0 0 6px 0; }
.subtitle { font-size: 12px; color: #7a6a52; text-transform: uppercase; letter-spacing: 0.08em; }
.pattern { font-size: 14px; color: #5a4a35; }
.pattern code {
  font-family: "Menlo", "Consolas", "Liberation Mono", monospace;
  background: #f0e6d6;
  padding: 2px 6px;
  border-radius: 6px;
}
table {
  width: 100%;
  border-collapse: separate;
  border-spacing: 0;
  background: #fff;
  border: 1px solid #e1d7c5;
  border-radius: 14px;
  overflow: hidden;
  margin-top: 18px;
  box-shadow: 0 8px 20px rgba(80, 64, 32, 0.08);
}
th, td { padding: 10px 12px; vertical-align: top; border-bottom: 1px solid #eee3d4; }
th {
  background: #efe6d7;
  text-align: left;
  letter-spacing: 0.04em;
  font-size: 12px;
  text-transform: uppercase;
  color: #5a4a35;
}
tr:hover td { background: #fff6e8; }
.context { font-family: "Menlo", "Consolas", "Liberation Mono", monospace; font-size: 13px; }
a { color: #2b5c7d; text-decoration: none; }
a:hover { text-decoration: underline; }
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="gpdf-pattern" content="{{.Pattern}}" />
<title>gpdf results</title>
<style>` + reportStyle + `</style>
</head>
<body>
<div class="wrap">
<div class="header">
  <div class="header-top">
    <div class="title">{{.Title}}</div>
    {{if .BackHref}}<a class="back-link" href="{{.BackHref}}">&larr; Back</a>{{end}}
  </div>
  <div class="subtitle">created by gpdf</div>
  <div class="pattern">Pattern: <code>{{.Pattern}}</code></div>
</div>
<table>
<thead>
<tr>
<th>File</th>
<th>Location</th>
<th>Context</th>
<th>Links</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.File}}</td>
<td>{{.Location}}</td>
<td class="context">{{.Context}}</td>
<td>{{range $i, $l := .Links}}{{if $i}}<br>{{end}}<a href="{{$l.Href}}">{{$l.Label}}</a>{{end}}</td>
</tr>
{{end}}</tbody>
</table>
</div>
</body>
</html>
`))

var reportsIndexTemplate = template.Must(template.New("reports").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>gpdf reports</title>
<style>` + reportStyle + `</style>
</head>
<body>
<div class="wrap">
<div class="header">
  <div class="title">{{.Title}}</div>
  <div class="subtitle">created by gpdf</div>
</div>
<table>
<thead>
<tr><th>Pattern</th><th>Report</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Pattern}}</td><td><a href="{{.Href}}">{{.Name}}</a></td></tr>
{{end}}</tbody>
</table>
</div>
</body>
</html>
`))
