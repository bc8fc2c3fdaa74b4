package gpdf

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

// isPDF checks whether data starts with the PDF magic number.
func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:5]) == "%PDF-"
}

func TestRenderPage_ContentsPage(t *testing.T) {
	skipIfNoChrome(t)

	m, err := NewMerger(MergeConfig{Title: "render test", Render: RenderConfig{NoSandbox: true}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.Close() })
	m.entries = []*tocEntry{
		{title: "Doc A", sourcePath: "a.pdf", sourcePage: 1, mergedPage: 2},
		{title: "Doc B", sourcePath: "b.pdf", sourcePage: 4, mergedPage: 3},
	}

	html, err := m.contentsHTML()
	if err != nil {
		t.Fatalf("contentsHTML: %v", err)
	}
	data, err := renderPage(context.Background(), html, RenderConfig{NoSandbox: true})
	if err != nil {
		t.Fatalf("renderPage: %v", err)
	}
	if !isPDF(data) {
		t.Fatal("output is not a valid PDF")
	}
	if len(data) < 100 {
		t.Errorf("PDF unexpectedly small: %d bytes", len(data))
	}
}

func TestTOCGeometry_RowCapacity(t *testing.T) {
	if tocRowCapacity != 31 {
		t.Errorf("tocRowCapacity = %d, want 31", tocRowCapacity)
	}
	bottom := tocRowsTopPt + float64(tocRowCapacity)*tocRowHeightPt
	if bottom > tocPageHeightPt-tocLeftPt {
		t.Errorf("last row ends at %vpt, past the bottom margin", bottom)
	}
}

func TestContentsHTML_Layout(t *testing.T) {
	m, err := NewMerger(MergeConfig{Title: "audit"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.Close() })
	m.entries = []*tocEntry{
		{title: "Doc A", sourcePage: 1, mergedPage: 2},
		{title: "Doc <B>", sourcePage: 4, mergedPage: 3},
	}

	html, err := m.contentsHTML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"audit",
		"Doc A - page 1",
		"Doc &lt;B&gt; - page 4",
		"top: 96pt",
		"top: 118pt",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("contents HTML missing %q", want)
		}
	}
}
