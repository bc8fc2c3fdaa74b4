package gpdf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is a read-only view of one input file. Implementations that
// cannot determine page boundaries report NumPages() == 0 and serve the
// full document text from PageText(0); matches against such documents are
// located by fractional position instead of page number.
type Document interface {
	// Title returns the document title from metadata, or the file's base
	// name when no title is set.
	Title() string

	// NumPages returns the page count, or 0 when page boundaries are
	// unknown.
	NumPages() int

	// PageText returns the plain text of the page with the given 0-based
	// index. A page whose text cannot be extracted yields an empty
	// string, never an error: extraction failures are not match failures.
	PageText(i int) string

	Close() error
}

// Opener opens a path as a [Document]. The default is [Open].
type Opener func(path string) (Document, error)

// Open reads the PDF at path. It returns an *UnreadableDocumentError when
// the file is missing, encrypted, or not parseable as a PDF.
func Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &UnreadableDocumentError{Path: path, Err: err}
	}
	return &pdfDocument{path: path, file: f, reader: r}, nil
}

// pdfDocument is the default backend, built on github.com/ledongthuc/pdf.
type pdfDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

func (d *pdfDocument) Title() string {
	info := d.reader.Trailer().Key("Info")
	if title := strings.TrimSpace(info.Key("Title").Text()); title != "" {
		return title
	}
	return filepath.Base(d.path)
}

func (d *pdfDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(i int) string {
	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
