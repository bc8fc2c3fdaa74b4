package gpdf

// MatchRecord is one pattern occurrence in one document. Records are
// immutable once created; the context fields hold whitespace-normalised
// text clipped at the page boundary.
type MatchRecord struct {
	SourcePath string
	Title      string
	Location   Location

	Before string // context preceding the match, possibly empty
	Match  string // the matched text itself
	After  string // context following the match, possibly empty
}

// Context assembles the full context window with the match wrapped in the
// given markers. Empty markers yield the plain window.
func (r MatchRecord) Context(open, close string) string {
	return r.Before + open + r.Match + close + r.After
}

// PageKey identifies one page of one source document.
type PageKey struct {
	Path string
	Page int
}

// PageRef is one matching page staged for merging or linking.
type PageRef struct {
	SourcePath string
	Title      string
	Page       int // 1-based
}

// ResultSet is an insertion-ordered collection of match records: file
// order as given on input, then page order, then in-page match order.
// Nothing is deduplicated or re-ranked.
type ResultSet struct {
	records []MatchRecord
}

func (s *ResultSet) add(r MatchRecord) {
	s.records = append(s.records, r)
}

// Records returns the records in insertion order. The returned slice is
// shared; callers must not modify it.
func (s *ResultSet) Records() []MatchRecord {
	return s.records
}

// Len returns the number of records.
func (s *ResultSet) Len() int {
	return len(s.records)
}

// MatchedPages returns the distinct (source, page) pairs with at least one
// match, in result order. Records without a page number are not pages and
// are skipped.
func (s *ResultSet) MatchedPages() []PageRef {
	var refs []PageRef
	seen := make(map[PageKey]bool)
	for _, r := range s.records {
		page, ok := r.Location.Page()
		if !ok {
			continue
		}
		key := PageKey{Path: r.SourcePath, Page: page}
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, PageRef{SourcePath: r.SourcePath, Title: r.Title, Page: page})
	}
	return refs
}

// Sources returns the distinct source paths with at least one match, in
// result order.
func (s *ResultSet) Sources() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, r := range s.records {
		if seen[r.SourcePath] {
			continue
		}
		seen[r.SourcePath] = true
		paths = append(paths, r.SourcePath)
	}
	return paths
}
