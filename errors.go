package gpdf

import (
	"errors"
	"fmt"
)

// ErrNoDocuments is returned by [Searcher.Search] when not a single input
// file could be opened.
var ErrNoDocuments = errors.New("gpdf: no readable documents")

// PatternError reports a search pattern that does not compile. It is
// fatal: no files are processed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("gpdf: invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// UnreadableDocumentError reports a file that could not be opened or
// parsed as a PDF (missing, corrupt, or encrypted). Callers treat it as a
// warning and continue with the remaining files.
type UnreadableDocumentError struct {
	Path string
	Err  error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("gpdf: unreadable document %s: %v", e.Path, e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error { return e.Err }

// WriteError reports a failure to produce an output artifact. It is fatal
// for that artifact only; console output already produced is unaffected.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("gpdf: writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// PageCopyError reports a single page that could not be copied into the
// merged document. The merge continues with the remaining pages.
type PageCopyError struct {
	Source string
	Page   int
	Err    error
}

func (e *PageCopyError) Error() string {
	return fmt.Sprintf("gpdf: copying page %d of %s: %v", e.Page, e.Source, e.Err)
}

func (e *PageCopyError) Unwrap() error { return e.Err }
