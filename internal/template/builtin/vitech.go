package builtin

import (
	"regexp"
	"strings"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/template"
)

// Vitech parses Vitech Development Limited commercial invoices.
//
// Data rows carry every field on one line:
//
//	PO# PKGS QTY ITEM_CODE HS_CODE COUNTRY NET_WT GR_WT DIM $UNIT $TOTAL
//	40049557 1 315 21-250464 8431.20.0000 CHINA 68 90 77X76X62 $2.18 $686.70
type Vitech struct{}

var (
	vitechLineRe = regexp.MustCompile(`(?i)(\d{8})\s+(\d+)\s+([\d,]+)\s+(\d{2}-\d{6})\s+(\d{4}\.\d{2}\.\d{4})\s+(CHINA)\s+([\d,]+)\s+([\d,]+)\s+(\d+[Xx]\d+[Xx]\d+)\s+\$([\d,.]+)\s+\$([\d,.]+)`)
	vitechRowRe  = regexp.MustCompile(`(\d{8})\s+(\d+)\s+([\d,]+)\s+(\d{2}-\d{6})\b`)
	vitechDetRe  = regexp.MustCompile(`(?i)(\d{4}\.\d{2}\.\d{4})\s+(CHINA)\s+([\d,]+)\s+([\d,]+)\s+(\d+[Xx]\d+[Xx]\d+)\s+\$([\d,.]+)\s+\$([\d,.]+)`)
	vitechHTSRe  = regexp.MustCompile(`(?i)HTS#(\d{10})-([A-Z\s]+?)\s+(\d+)\s*PCS?\s+\$([\d,.]+)\s+\$([\d,.]+)`)

	vitechInvoiceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)INVOICE\s*#\s*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)HFVT25-[A-Z]\d+`),
	}
	vitechProjectRe = regexp.MustCompile(`(?i)B/L\s*#\s*([A-Z0-9]+)`)
)

func (Vitech) Info() template.Info {
	return template.Info{
		Name:        "Vitech Development Limited",
		Description: "Invoice template for Vitech Development Limited",
		Client:      "Vitech Development Limited",
		Version:     "1.0.6",
		Enabled:     true,
		ExtraColumns: []string{
			constants.FieldPONumber, constants.FieldPackages, constants.FieldHTSCode,
			constants.FieldCountryOrigin, constants.FieldNetWeight,
			constants.FieldGrossWeight, constants.FieldDimensions, constants.FieldUnitPrice,
		},
	}
}

func (Vitech) CanProcess(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "vitech development limited") ||
		(strings.Contains(lower, "commercial invoice") && strings.Contains(lower, "hfvt25-"))
}

func (t Vitech) ConfidenceScore(text string) float64 {
	if !t.CanProcess(text) {
		return 0
	}
	score := 0.5
	lower := strings.ToLower(text)
	for _, indicator := range []string{
		"vitech development limited",
		"commercial invoice",
		"hfvt25-",
		"sigma corporation",
		"8431.20.0000",
	} {
		if strings.Contains(lower, indicator) {
			score += 0.1
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (Vitech) ExtractInvoiceNumber(text string) string {
	for _, re := range vitechInvoiceRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}
	return template.Unknown
}

// ExtractProjectNumber returns the B/L number as the project reference.
func (Vitech) ExtractProjectNumber(text string) string {
	if m := vitechProjectRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return template.Unknown
}

func (Vitech) ExtractLineItems(text string) []template.RawItem {
	var items []template.RawItem
	seen := map[string]struct{}{}

	add := func(item template.RawItem) {
		if _, dup := seen[item.Key()]; dup {
			return
		}
		seen[item.Key()] = struct{}{}
		items = append(items, item)
	}

	for _, m := range vitechLineRe.FindAllStringSubmatch(text, -1) {
		add(template.RawItem{
			constants.FieldPartNumber:    m[4],
			constants.FieldDescription:   "",
			constants.FieldQuantity:      template.StripThousands(m[3]),
			constants.FieldTotalPrice:    template.StripThousands(m[11]),
			constants.FieldPONumber:      m[1],
			constants.FieldPackages:      m[2],
			constants.FieldHTSCode:       m[5],
			constants.FieldCountryOrigin: m[6],
			constants.FieldNetWeight:     template.StripThousands(m[7]),
			constants.FieldGrossWeight:   template.StripThousands(m[8]),
			constants.FieldDimensions:    m[9],
			constants.FieldUnitPrice:     template.StripThousands(m[10]),
		})
	}
	if len(items) > 0 {
		return items
	}

	// Two-phase fallback for messier extractions: locate the row head, then
	// search a bounded window after it for the detail fields. The text
	// between the item code and the HS code is the description.
	for _, loc := range vitechRowRe.FindAllStringSubmatchIndex(text, -1) {
		m := vitechRowRe.FindStringSubmatch(text[loc[0]:loc[1]])
		end := loc[1] + 500
		if end > len(text) {
			end = len(text)
		}
		remaining := text[loc[1]:end]
		det := vitechDetRe.FindStringSubmatch(remaining)
		if det == nil {
			continue
		}
		description := ""
		if idx := strings.Index(remaining, det[1]); idx > 0 {
			description = strings.Join(strings.Fields(remaining[:idx]), " ")
		}
		add(template.RawItem{
			constants.FieldPartNumber:    m[4],
			constants.FieldDescription:   description,
			constants.FieldQuantity:      template.StripThousands(m[3]),
			constants.FieldTotalPrice:    template.StripThousands(det[7]),
			constants.FieldPONumber:      m[1],
			constants.FieldPackages:      m[2],
			constants.FieldHTSCode:       det[1],
			constants.FieldCountryOrigin: det[2],
			constants.FieldNetWeight:     template.StripThousands(det[3]),
			constants.FieldGrossWeight:   template.StripThousands(det[4]),
			constants.FieldDimensions:    det[5],
			constants.FieldUnitPrice:     template.StripThousands(det[6]),
		})
	}
	if len(items) > 0 {
		return items
	}

	// Simplified format, e.g. HTS#8432900020-HUB CASTINGS 4 PCS $265.81 $1,063.24
	for _, m := range vitechHTSRe.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		hts := raw[:4] + "." + raw[4:6] + "." + raw[6:]
		description := strings.TrimSpace(m[2])
		add(template.RawItem{
			constants.FieldPartNumber:    strings.ReplaceAll(description, " ", "_"),
			constants.FieldQuantity:      m[3],
			constants.FieldTotalPrice:    template.StripThousands(m[5]),
			constants.FieldPONumber:      "",
			constants.FieldPackages:      "",
			constants.FieldHTSCode:       hts,
			constants.FieldCountryOrigin: "CHINA",
			constants.FieldNetWeight:     "",
			constants.FieldGrossWeight:   "",
			constants.FieldDimensions:    "",
			constants.FieldUnitPrice:     template.StripThousands(m[4]),
		})
	}
	return items
}

func (Vitech) PostProcessItems(items []template.RawItem) []template.RawItem {
	return template.DedupeItems(items)
}

func (Vitech) IsPackingList(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice")
}
