package builtin

import (
	"regexp"
	"strings"

	"github.com/devhouston/ocrmill/internal/template"
)

// BillOfLading detects bill-of-lading pages and recovers the shipment-level
// gross weight. It is engine-owned and always evaluated per document; it is
// never registered for selection, so it cannot win a document, and it emits
// no line items.
type BillOfLading struct{}

var (
	bolWeightRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TOTAL\s+GROSS\s+WEIGHT\s*[:\s]\s*([\d,]+\.?\d*)\s*(?:KGS?|KILOS?)?`),
		regexp.MustCompile(`(?i)GROSS\s+WEIGHT\s*(?:\(KGS?\))?\s*[:\s]\s*([\d,]+\.?\d*)\s*(?:KGS?|KILOS?)?`),
		regexp.MustCompile(`(?i)\bG\.?W\.?\s*[:\s]\s*([\d,]+\.?\d*)\s*KGS?\b`),
	}
	bolBillNumberRe = regexp.MustCompile(`(?i)(?:BILL\s+OF\s+LADING|B/L)\s*(?:NO\.?|NUMBER|#)\s*[:\s]*([A-Z0-9\-]+)`)
	bolContainerRe  = regexp.MustCompile(`\b([A-Z]{4}\d{7})\b`)
)

func (BillOfLading) Info() template.Info {
	return template.Info{
		Name:        "Bill of Lading",
		Description: "Shipment-level gross weight scanner for bill-of-lading pages",
		Version:     "1.1.0",
		Enabled:     true,
	}
}

func (BillOfLading) CanProcess(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "bill of lading") ||
		strings.Contains(lower, "ocean bill") ||
		strings.Contains(lower, "sea waybill")
}

func (t BillOfLading) ConfidenceScore(text string) float64 {
	if !t.CanProcess(text) {
		return 0
	}
	score := 0.6
	lower := strings.ToLower(text)
	for _, indicator := range []string{"shipper", "consignee", "port of loading", "port of discharge", "container"} {
		if strings.Contains(lower, indicator) {
			score += 0.08
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ExtractGrossWeight returns the shipment gross weight in kilograms as the
// numeric string found on the page, or "" when no weight pattern matches.
func (BillOfLading) ExtractGrossWeight(text string) string {
	for _, re := range bolWeightRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return template.StripThousands(m[1])
		}
	}
	return ""
}

// ExtractBillNumber returns the B/L number, or "" when absent.
func (BillOfLading) ExtractBillNumber(text string) string {
	if m := bolBillNumberRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractContainerNumber returns the first ISO 6346 style container number,
// or "" when absent.
func (BillOfLading) ExtractContainerNumber(text string) string {
	return bolContainerRe.FindString(text)
}

func (t BillOfLading) ExtractInvoiceNumber(text string) string {
	if n := t.ExtractBillNumber(text); n != "" {
		return n
	}
	return template.Unknown
}

func (BillOfLading) ExtractProjectNumber(text string) string {
	return template.Unknown
}

func (BillOfLading) ExtractLineItems(text string) []template.RawItem {
	return nil
}

func (BillOfLading) PostProcessItems(items []template.RawItem) []template.RawItem {
	return template.DedupeItems(items)
}

func (BillOfLading) IsPackingList(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice")
}
