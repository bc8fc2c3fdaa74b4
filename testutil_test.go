package gpdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// writeSimplePDF writes a minimal but structurally valid PDF with one
// line of Helvetica text per page, so tests can exercise the real
// extraction and page-manipulation backends without binary fixtures.
func writeSimplePDF(t *testing.T, path, title string, pages []string) {
	t.Helper()
	if err := os.WriteFile(path, buildSimplePDF(title, pages), 0o644); err != nil {
		t.Fatalf("writing test PDF %s: %v", path, err)
	}
}

// Object layout: 1 catalog, 2 page tree, 2+i page i, 2+n+i content i,
// 3+2n font, 4+2n info (when a title is set).
func buildSimplePDF(title string, pages []string) []byte {
	n := len(pages)
	fontObj := 3 + 2*n
	infoObj := 4 + 2*n

	var buf bytes.Buffer
	offsets := make([]int, fontObj+2)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i := range pages {
		writeObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
		writeObj(3+n+i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	size := fontObj + 1
	if title != "" {
		writeObj(infoObj, fmt.Sprintf("<< /Title (%s) >>", escapePDFString(title)))
		size = infoObj + 1
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num < size; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	buf.WriteString("trailer\n")
	if title != "" {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", size, infoObj)
	} else {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R >>\n", size)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
