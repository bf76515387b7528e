package builtin

import (
	"regexp"
	"strings"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/template"
)

// Shaanxi parses Shaanxi Fangzhi Pipe Co., Ltd invoices.
//
// Line format:
//
//	PART_NUMBER DESCRIPTION PCS## $/PC##.### $TOTAL
//	85-146938 8x4/6" TS CAP (FINISHED) PIPE PCS54 $/PC40.320 $2,177.280
type Shaanxi struct{}

var shaanxiKeywords = []string{
	"shaanxi fangzhi",
	"fangzhi pipe",
	"xingang port",
	"xingqing road",
	"xi'an city",
	"shaanxi province",
}

var (
	shaanxiLineRe = regexp.MustCompile(`(?i)(\d{2}-[\dA-Z\-]+(?:-[A-Z]+)?)\s+(.+?)\s+PCS\s*(\d+)\s+\$/PC\s*([\d,]+\.?\d*)\s+\$\s*([\d,]+\.\d{2,3})`)
	shaanxiRowRe  = regexp.MustCompile(`(?i)^\s*(\d{2}-[\dA-Z\-]+(?:-[A-Z]+)?)\s+(.+)`)
	shaanxiQtyRe  = regexp.MustCompile(`(?i)PCS\s*(\d+)`)
	shaanxiUnitRe = regexp.MustCompile(`(?i)\$/PC\s*([\d,]+\.?\d*)`)
	shaanxiTotRe  = regexp.MustCompile(`\$\s*([\d,]+\.\d{2,3})\s*$`)
	shaanxiDescRe = regexp.MustCompile(`(?i)^(.+?)\s*PCS`)
	shaanxiPartRe = regexp.MustCompile(`\b\d{2}-\d{5,7}\b`)
	shaanxiPCSRe  = regexp.MustCompile(`(?i)PCS\s*\d+`)

	shaanxiInvoiceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)INVOICE\s*(?:NO\.?)?\s*[:\s]\s*([A-Z0-9][\w\-/]+)`),
		regexp.MustCompile(`(?i)Invoice\s*(?:No\.?|#)\s*[:\s]*([A-Z0-9][\w\-/]+)`),
	}
	shaanxiProjectRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)P\.?O\.?\s*#?\s*:?\s*(\d{6,})`),
		regexp.MustCompile(`(?i)Purchase\s*Order[:\s]*(\d+)`),
		regexp.MustCompile(`\b(400\d{5})\b`), // Sigma PO format
	}
)

func (Shaanxi) Info() template.Info {
	return template.Info{
		Name:        "Shaanxi Fangzhi",
		Description: "Invoices from Shaanxi Fangzhi Pipe Co., Ltd",
		Client:      "Sigma Corporation",
		Version:     "2.0.0",
		Enabled:     true,
		ExtraColumns: []string{
			constants.FieldPONumber, constants.FieldUnitPrice,
			constants.FieldDescription, constants.FieldCountryOrigin,
		},
	}
}

func (Shaanxi) CanProcess(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range shaanxiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (t Shaanxi) ConfidenceScore(text string) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range shaanxiKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	score := 0.7 + float64(matches-1)*0.05
	if strings.Contains(lower, "sigma corporation") {
		score += 0.1
	}
	if shaanxiPartRe.MatchString(text) {
		score += 0.1
	}
	if shaanxiPCSRe.MatchString(text) {
		score += 0.05
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (Shaanxi) ExtractInvoiceNumber(text string) string {
	for _, re := range shaanxiInvoiceRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return template.Unknown
}

func (Shaanxi) ExtractProjectNumber(text string) string {
	for _, re := range shaanxiProjectRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return template.Unknown
}

func (t Shaanxi) ExtractLineItems(text string) []template.RawItem {
	po := t.ExtractProjectNumber(text)

	var items []template.RawItem
	for _, m := range shaanxiLineRe.FindAllStringSubmatch(text, -1) {
		items = append(items, template.RawItem{
			constants.FieldPartNumber:  strings.ToUpper(strings.TrimSpace(m[1])),
			constants.FieldDescription: strings.TrimSpace(m[2]),
			constants.FieldQuantity:    m[3],
			constants.FieldUnitPrice:   template.StripThousands(m[4]),
			constants.FieldTotalPrice:  template.StripThousands(m[5]),
			constants.FieldPONumber:    po,
		})
	}
	if len(items) > 0 {
		return items
	}

	// Alternative: part numbers on their own rows with pricing fragments
	// scattered through the rest of the line.
	for _, raw := range strings.Split(text, "\n") {
		m := shaanxiRowRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		rest := m[2]
		qty := shaanxiQtyRe.FindStringSubmatch(rest)
		tot := shaanxiTotRe.FindStringSubmatch(rest)
		if qty == nil || tot == nil {
			continue
		}
		item := template.RawItem{
			constants.FieldPartNumber: strings.ToUpper(strings.TrimSpace(m[1])),
			constants.FieldQuantity:   qty[1],
			constants.FieldTotalPrice: template.StripThousands(tot[1]),
			constants.FieldPONumber:   po,
		}
		if unit := shaanxiUnitRe.FindStringSubmatch(rest); unit != nil {
			item[constants.FieldUnitPrice] = template.StripThousands(unit[1])
		}
		if desc := shaanxiDescRe.FindStringSubmatch(rest); desc != nil {
			item[constants.FieldDescription] = strings.TrimSpace(desc[1])
		}
		items = append(items, item)
	}
	return items
}

// PostProcessItems dedupes and stamps the fixed country of origin.
func (Shaanxi) PostProcessItems(items []template.RawItem) []template.RawItem {
	items = template.DedupeItems(items)
	for _, item := range items {
		if item[constants.FieldCountryOrigin] == "" {
			item[constants.FieldCountryOrigin] = "CHINA"
		}
	}
	return items
}

func (Shaanxi) IsPackingList(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice")
}
