package engine

import (
	"strings"
	"testing"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/document"
	"github.com/devhouston/ocrmill/internal/template"
)

// lineEcho extracts one item per "ITEM <part> <qty> <total>" line so tests
// can see exactly which pages fed each flush.
type lineEcho struct {
	fakeTemplate
}

func (lineEcho) ExtractLineItems(text string) []template.RawItem {
	var items []template.RawItem
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[0] != "ITEM" {
			continue
		}
		items = append(items, template.RawItem{
			constants.FieldPartNumber: fields[1],
			constants.FieldQuantity:   fields[2],
			constants.FieldTotalPrice: fields[3],
		})
	}
	return items
}

func pagesOf(texts ...string) document.Document {
	return document.New("test.pdf", texts)
}

func TestSegmenterFlushesOnInvoiceBoundary(t *testing.T) {
	tmpl := lineEcho{fakeTemplate{name: "echo", score: 1, enabled: true}}
	seg := newSegmenter(tmpl, "", testLogger())

	doc := pagesOf(
		"Invoice no: INV-A\nITEM P-1 1.00 10.00",
		"continuation of INV-A\nITEM P-2 2.00 20.00",
		"Invoice no: INV-B\nITEM P-3 3.00 30.00",
	)
	for _, page := range doc.Pages {
		seg.Step(page)
	}
	items := seg.Finish()

	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, wantInv := range []string{"INV-A", "INV-A", "INV-B"} {
		if got := items[i][constants.FieldInvoiceNumber]; got != wantInv {
			t.Errorf("item %d invoice = %q, want %q", i, got, wantInv)
		}
	}
	if items[0][constants.FieldPartNumber] != "P-1" || items[1][constants.FieldPartNumber] != "P-2" {
		t.Errorf("first segment should hold pages 1-2 items, got %v", items[:2])
	}
	if items[2][constants.FieldPartNumber] != "P-3" {
		t.Errorf("second segment item = %v", items[2])
	}
}

func TestSegmenterSkipsPackingListPages(t *testing.T) {
	tmpl := lineEcho{fakeTemplate{name: "echo", score: 1, enabled: true}}
	seg := newSegmenter(tmpl, "", testLogger())

	doc := pagesOf(
		"Invoice no: INV-A\nITEM P-1 1.00 10.00",
		"Packing List\nITEM GHOST 9.00 99.00",
	)
	for _, page := range doc.Pages {
		seg.Step(page)
	}
	items := seg.Finish()

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (packing-list page suppressed)", len(items))
	}
	if items[0][constants.FieldPartNumber] != "P-1" {
		t.Errorf("unexpected surviving item %v", items[0])
	}
}

func TestSegmenterSkipsBillOfLadingPages(t *testing.T) {
	tmpl := lineEcho{fakeTemplate{name: "echo", score: 1, enabled: true}}
	seg := newSegmenter(tmpl, "", testLogger())

	doc := pagesOf(
		"Invoice no: INV-A\nITEM P-1 1.00 10.00",
		"BILL OF LADING\nGROSS WEIGHT: 4950.000 KGS\nITEM GHOST 9.00 99.00",
	)
	for _, page := range doc.Pages {
		seg.Step(page)
	}
	items := seg.Finish()

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (bill-of-lading page suppressed)", len(items))
	}
}

func TestSegmenterFallsBackToTemplateTokens(t *testing.T) {
	// No page carries a page-level invoice token; the template recovers the
	// numbers from the flushed blob.
	tmpl := lineEcho{fakeTemplate{
		name: "echo", score: 1, enabled: true,
		invoice: "2025/1850", project: "US25A0238",
	}}
	seg := newSegmenter(tmpl, "", testLogger())

	doc := pagesOf("some header\nITEM P-1 1.00 10.00")
	for _, page := range doc.Pages {
		seg.Step(page)
	}
	items := seg.Finish()

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if got := items[0][constants.FieldInvoiceNumber]; got != "2025/1850" {
		t.Errorf("invoice = %q, want template-derived 2025/1850", got)
	}
	if got := items[0][constants.FieldProjectNumber]; got != "US25A0238" {
		t.Errorf("project = %q, want template-derived US25A0238", got)
	}
}

func TestSegmenterUnknownWhenNothingMatches(t *testing.T) {
	tmpl := lineEcho{fakeTemplate{name: "echo", score: 1, enabled: true}}
	seg := newSegmenter(tmpl, "", testLogger())

	seg.Step(document.Page{Index: 0, Text: "no tokens here\nITEM P-1 1.00 10.00"})
	items := seg.Finish()

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if got := items[0][constants.FieldInvoiceNumber]; got != template.Unknown {
		t.Errorf("invoice = %q, want UNKNOWN", got)
	}
}

func TestSegmenterMergesBOLWeightPerFlush(t *testing.T) {
	tmpl := lineEcho{fakeTemplate{name: "echo", score: 1, enabled: true}}
	seg := newSegmenter(tmpl, "4950.000", testLogger())

	seg.Step(document.Page{Index: 0, Text: "Invoice no: INV-A\nITEM P-1 1.00 10.00"})
	items := seg.Finish()

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if got := items[0][constants.FieldBOLGrossWt]; got != "4950.000" {
		t.Errorf("bol_gross_weight = %q", got)
	}
	if got := items[0][constants.FieldNetWeight]; got != "4950.000" {
		t.Errorf("net_weight fallback = %q", got)
	}
}

func TestPageTokenPatterns(t *testing.T) {
	tests := []struct {
		text        string
		wantInvoice string
	}{
		{"Invoice no: INV-A", "INV-A"},
		{"Invoice number: 2025001", "2025001"},
		{"Proforma invoice n.: 2025/1850", "2025/1850"},
		{"invoice not included here", ""},
		{"plain page", ""},
	}
	for _, tc := range tests {
		got := ""
		if m := segInvoiceRe.FindStringSubmatch(tc.text); m != nil {
			got = m[1]
		}
		if got != tc.wantInvoice {
			t.Errorf("invoice token in %q = %q, want %q", tc.text, got, tc.wantInvoice)
		}
	}

	if m := segProjectRe.FindStringSubmatch("2. project n.: us25a0238"); m != nil {
		t.Errorf("lowercase project code should not match, got %q", m[1])
	}
	m := segProjectRe.FindStringSubmatch("Project n.: US25A0238")
	if m == nil {
		t.Fatal("project token not found")
	}
	if m[1] != "US25A0238" {
		t.Errorf("project = %q", m[1])
	}
}
