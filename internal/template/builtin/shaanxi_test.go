package builtin

import (
	"testing"

	"github.com/devhouston/ocrmill/constants"
)

const shaanxiText = `SHAANXI FANGZHI PIPE CO., LTD
XI'AN CITY, SHAANXI PROVINCE
SOLD TO: SIGMA CORPORATION
INVOICE NO.: SF-2025-0312
P.O. # 40012345
85-146938 8x4/6" TS CAP (FINISHED) PIPE PCS54 $/PC40.320 $2,177.280
85-146939 6x4" TS CAP (FINISHED) PIPE PCS20 $/PC38.100 $762.000
`

func TestShaanxiLineItems(t *testing.T) {
	tmpl := Shaanxi{}

	if !tmpl.CanProcess(shaanxiText) {
		t.Fatal("CanProcess = false")
	}
	items := tmpl.PostProcessItems(tmpl.ExtractLineItems(shaanxiText))
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	first := items[0]
	if got := first[constants.FieldPartNumber]; got != "85-146938" {
		t.Errorf("part_number = %q, want 85-146938", got)
	}
	if got := first[constants.FieldQuantity]; got != "54" {
		t.Errorf("quantity = %q, want 54", got)
	}
	if got := first[constants.FieldUnitPrice]; got != "40.320" {
		t.Errorf("unit_price = %q, want 40.320", got)
	}
	if got := first[constants.FieldTotalPrice]; got != "2177.280" {
		t.Errorf("total_price = %q, want 2177.280", got)
	}
	if got := first[constants.FieldPONumber]; got != "40012345" {
		t.Errorf("po_number = %q, want 40012345", got)
	}
	for i, item := range items {
		if got := item[constants.FieldCountryOrigin]; got != "CHINA" {
			t.Errorf("item %d country_origin = %q, want injected CHINA", i, got)
		}
	}
}

func TestShaanxiRowFallback(t *testing.T) {
	tmpl := Shaanxi{}
	// Pricing fragments scattered across the row rather than in column order.
	text := `SHAANXI FANGZHI PIPE CO., LTD
85-146938 8x4 TS CAP PCS 54 some noise $/PC 40.320 $ 2,177.280
`
	items := tmpl.ExtractLineItems(text)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 from row fallback", len(items))
	}
	if got := items[0][constants.FieldQuantity]; got != "54" {
		t.Errorf("quantity = %q, want 54", got)
	}
	if got := items[0][constants.FieldTotalPrice]; got != "2177.280" {
		t.Errorf("total_price = %q, want 2177.280", got)
	}
}

func TestShaanxiScore(t *testing.T) {
	tmpl := Shaanxi{}
	if got := tmpl.ConfidenceScore("unrelated invoice"); got != 0 {
		t.Errorf("score on unrelated text = %v, want 0", got)
	}
	score := tmpl.ConfidenceScore(shaanxiText)
	if score <= 0.7 || score > 1 {
		t.Errorf("score = %v, want in (0.7,1]", score)
	}
}

func TestShaanxiInvoiceAndProject(t *testing.T) {
	tmpl := Shaanxi{}
	if got := tmpl.ExtractInvoiceNumber(shaanxiText); got != "SF-2025-0312" {
		t.Errorf("invoice = %q, want SF-2025-0312", got)
	}
	if got := tmpl.ExtractProjectNumber(shaanxiText); got != "40012345" {
		t.Errorf("project = %q, want 40012345", got)
	}
}
