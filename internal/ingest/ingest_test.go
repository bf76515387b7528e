package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadTextSplitsPagesOnFormFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("page one\fpage two\fpage three"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	if doc.Pages[1].Text != "page two" {
		t.Errorf("page 1 = %q", doc.Pages[1].Text)
	}
}

func TestReadDocumentRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadDocument("invoice.docx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.txt")
	write("a.pdf")
	write("skip.docx")
	write(".hidden.pdf")
	write("sub/c.txt")

	paths, stats, err := ScanDirectory(dir, nil)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v, want 3 entries", paths)
	}
	// Sorted for deterministic batch order.
	for i, want := range []string{"a.pdf", "b.txt", filepath.Join("sub", "c.txt")} {
		if got := paths[i]; got != filepath.Join(dir, want) {
			t.Errorf("path %d = %q, want %q", i, got, filepath.Join(dir, want))
		}
	}
	if stats.Matched != 3 {
		t.Errorf("matched = %d, want 3", stats.Matched)
	}
	if stats.Scanned != 4 {
		t.Errorf("scanned = %d, want 4 (hidden file skipped before counting)", stats.Scanned)
	}
}
