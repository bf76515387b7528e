package builtin

import "testing"

func TestBOLGrossWeightVariants(t *testing.T) {
	tmpl := BillOfLading{}
	tests := []struct {
		text string
		want string
	}{
		{"TOTAL GROSS WEIGHT: 4,950.000 KGS", "4950.000"},
		{"GROSS WEIGHT (KGS): 1,250.5", "1250.5"},
		{"G.W.: 800 KGS", "800"},
		{"GROSS WEIGHT 2,177.28 KILOS", "2177.28"},
		{"no weight on this page", ""},
	}
	for _, tc := range tests {
		if got := tmpl.ExtractGrossWeight(tc.text); got != tc.want {
			t.Errorf("ExtractGrossWeight(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestBOLFirstWeightPatternWins(t *testing.T) {
	tmpl := BillOfLading{}
	text := "TOTAL GROSS WEIGHT: 4,950.000 KGS\nG.W.: 123 KGS"
	if got := tmpl.ExtractGrossWeight(text); got != "4950.000" {
		t.Errorf("weight = %q, want 4950.000 (first pattern wins)", got)
	}
}

func TestBOLDetection(t *testing.T) {
	tmpl := BillOfLading{}
	for _, text := range []string{
		"BILL OF LADING\nSHIPPER: X",
		"Ocean Bill of Lading",
		"SEA WAYBILL NO. 12345",
	} {
		if !tmpl.CanProcess(text) {
			t.Errorf("CanProcess(%q) = false", text)
		}
	}
	if tmpl.CanProcess("COMMERCIAL INVOICE") {
		t.Error("invoice page misdetected as bill of lading")
	}
	if got := tmpl.ConfidenceScore("COMMERCIAL INVOICE"); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
}

func TestBOLBillAndContainerNumbers(t *testing.T) {
	tmpl := BillOfLading{}
	text := `BILL OF LADING NO.: COSU6412345678
CONTAINER: CSNU1234567
TOTAL GROSS WEIGHT: 4,950.000 KGS`

	if got := tmpl.ExtractBillNumber(text); got != "COSU6412345678" {
		t.Errorf("bill number = %q, want COSU6412345678", got)
	}
	if got := tmpl.ExtractContainerNumber(text); got != "CSNU1234567" {
		t.Errorf("container = %q, want CSNU1234567", got)
	}
	if got := tmpl.ExtractInvoiceNumber(text); got != "COSU6412345678" {
		t.Errorf("invoice fallback = %q, want bill number", got)
	}
}

func TestBOLEmitsNoLineItems(t *testing.T) {
	tmpl := BillOfLading{}
	if items := tmpl.ExtractLineItems("BILL OF LADING\nanything"); len(items) != 0 {
		t.Errorf("line items = %d, want 0", len(items))
	}
}
