package gpdf

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func touch(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectInputs_DirectoryExpansion(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"), []byte("%PDF-1.4"))
	touch(t, filepath.Join(dir, "a.PDF"), []byte("%PDF-1.4"))
	touch(t, filepath.Join(dir, "notes.txt"), []byte("text"))

	got, err := CollectInputs([]string{dir}, nil)
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.pdf")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCollectInputs_MissingPathIsWarning(t *testing.T) {
	var warnings strings.Builder
	got, err := CollectInputs([]string{"does-not-exist.pdf"}, &warnings)
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
	if !strings.Contains(warnings.String(), "missing") {
		t.Errorf("warnings = %q", warnings.String())
	}
}

func TestCollectInputs_NonPDFSkippedByExtensionAndMagic(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	touch(t, plain, []byte("just text"))

	// A real PDF signature behind a non-.pdf name passes the magic check.
	disguised := filepath.Join(dir, "report.bak")
	touch(t, disguised, []byte("%PDF-1.4\nrest of file"))

	var warnings strings.Builder
	got, err := CollectInputs([]string{plain, disguised}, &warnings)
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}
	if !reflect.DeepEqual(got, []string{disguised}) {
		t.Errorf("got %v, want only %v", got, disguised)
	}
	if !strings.Contains(warnings.String(), "notes.txt") {
		t.Errorf("warnings = %q", warnings.String())
	}
}

func TestExcludePaths(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.pdf")
	skip := filepath.Join(dir, "out.pdf")

	got := ExcludePaths([]string{keep, skip}, []string{skip, ""})
	if !reflect.DeepEqual(got, []string{keep}) {
		t.Errorf("got %v, want %v", got, []string{keep})
	}
}
