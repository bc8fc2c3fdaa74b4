package gpdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// CollectInputs expands CLI arguments into an ordered list of candidate
// PDF paths. Directories contribute their PDF files in name order; an
// empty argument list means the PDFs of the current working directory.
// Explicit file arguments without a .pdf extension are kept only when
// their magic bytes identify a PDF; anything else is reported to warn and
// dropped.
func CollectInputs(args []string, warn io.Writer) ([]string, error) {
	if warn == nil {
		warn = io.Discard
	}
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("gpdf: resolving working directory: %w", err)
		}
		return listPDFs(wd)
	}

	var paths []string
	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(warn, "WARN: missing %s\n", arg)
			continue
		}
		if stat.IsDir() {
			found, err := listPDFs(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
			continue
		}
		if !strings.EqualFold(filepath.Ext(arg), ".pdf") && !sniffPDF(arg) {
			fmt.Fprintf(warn, "WARN: skipping non-pdf %s\n", arg)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

// ExcludePaths drops every path whose absolute form appears in exclude.
// It keeps a run's own output artifacts out of its input set.
func ExcludePaths(paths, exclude []string) []string {
	if len(exclude) == 0 {
		return paths
	}
	excluded := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			excluded[abs] = true
		}
	}
	kept := paths[:0:0]
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err == nil && excluded[abs] {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gpdf: reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// sniffPDF reports whether the file's magic bytes identify a PDF.
func sniffPDF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	return filetype.Is(head[:n], "pdf")
}
