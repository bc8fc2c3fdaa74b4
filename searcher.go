package gpdf

import (
	"context"
	"fmt"
)

// Searcher runs the match pipeline over a set of PDF files: extract text
// per page, match, attach a location and context window, aggregate.
//
// Files are processed sequentially in the order given; their independence
// means nothing is shared between them beyond the compiled pattern.
type Searcher struct {
	cfg     searchConfig
	matcher *Matcher
}

// NewSearcher compiles pattern case-insensitively and returns a Searcher
// with the given options. An invalid pattern yields a *PatternError.
func NewSearcher(pattern string, opts ...Option) (*Searcher, error) {
	cfg := defaultSearchConfig()
	for _, o := range opts {
		o(&cfg)
	}
	m, err := NewMatcher(pattern, cfg.window)
	if err != nil {
		return nil, err
	}
	return &Searcher{cfg: cfg, matcher: m}, nil
}

// Search processes paths in order and returns the aggregated results.
// Unreadable files are written to the warning writer and skipped; only
// when no file at all could be opened does Search fail, with
// [ErrNoDocuments].
func (s *Searcher) Search(ctx context.Context, paths []string) (*ResultSet, error) {
	results := &ResultSet{}
	opened := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		doc, err := s.cfg.open(path)
		if err != nil {
			fmt.Fprintf(s.cfg.warn, "WARN: %v\n", err)
			continue
		}
		opened++
		err = s.searchDocument(ctx, doc, path, results)
		doc.Close()
		if err != nil {
			return results, err
		}
	}
	if opened == 0 {
		return nil, ErrNoDocuments
	}
	return results, nil
}

func (s *Searcher) searchDocument(ctx context.Context, doc Document, path string, results *ResultSet) error {
	title := doc.Title()

	n := doc.NumPages()
	if n == 0 {
		// No page boundaries: match the whole text and record fractional
		// positions. Never invent page numbers here.
		text := doc.PageText(0)
		for _, m := range s.matcher.FindAll(text) {
			s.record(results, MatchRecord{
				SourcePath: path,
				Title:      title,
				Location:   FractionLocation(m.Start, len(text)),
				Before:     m.Before,
				Match:      m.Text,
				After:      m.After,
			})
		}
		return nil
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		text := doc.PageText(i)
		if text == "" {
			continue
		}
		for _, m := range s.matcher.FindAll(text) {
			s.record(results, MatchRecord{
				SourcePath: path,
				Title:      title,
				Location:   PageLocation(i),
				Before:     m.Before,
				Match:      m.Text,
				After:      m.After,
			})
		}
	}
	return nil
}

// record aggregates one match and hands it to the streaming handler, if
// one is registered.
func (s *Searcher) record(results *ResultSet, r MatchRecord) {
	results.add(r)
	if s.cfg.emit != nil {
		s.cfg.emit(r)
	}
}

// Search is a convenience for one-off searches. For repeated searches
// with the same pattern create a [Searcher] to reuse the compiled
// expression.
func Search(ctx context.Context, pattern string, paths []string, opts ...Option) (*ResultSet, error) {
	s, err := NewSearcher(pattern, opts...)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, paths)
}
