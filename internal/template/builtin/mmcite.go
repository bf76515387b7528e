// Package builtin holds the compiled-in supplier templates. Registration
// order in Ordered() is the primary source's registration order and therefore
// the selector's tie-break order.
package builtin

import (
	"regexp"
	"strings"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/template"
)

// Mmcite parses mmcité a.s. invoices (Czech proforma/regular formats and the
// Brazilian subsidiary's NCM/HTS format).
//
// Regular line format:
//
//	PartNumber ProjectCode Qty ks PriceCZK VAT PriceUSD
//	LPU151-J02000 US25A0238 3,00 ks 11.579,04 CZK 0 1.646,70 USD
type Mmcite struct{}

var mmciteKeywords = []string{
	"mmcité",
	"mmcite",
	"bílovice nad svitavou",
	"bilovice nad svitavou",
}

var (
	// PartNumber ProjectCode Qty [ks|pc] PriceCZK VAT PriceUSD
	mmciteMainRe = regexp.MustCompile(`(?i)^([A-Z][A-Z0-9\-]+(?:-[A-Z0-9]+)?)\s+(US\d+[A-Z]\d+)\s+(\d+[,.]?\d*)\s*(?:ks|pc)?\s+([\d.,]+)\s*(?:CZK)?\s+(\d+)\s+([\d.,]+)\s*USD`)
	// Proforma rows carry no project code.
	mmciteProformaRe = regexp.MustCompile(`(?i)^([A-Z][A-Z0-9\-]+(?:-[A-Z0-9]+)?)\s+(\d+[,.]?\d*)\s*(?:ks|pc)\s+([\d.,]+)\s*CZK\s+(\d+)\s+([\d.,]+)\s*USD`)
	// Brazilian rows: PartNumber NCM HTS UnitUSD VAT Qty TotalUSD
	mmciteBrazilRe = regexp.MustCompile(`(?i)^([A-Za-z0-9][A-Za-z0-9\-_.]+(?:\s*\([^)]+\))?)\s+(\d{8})\s+(\d{4}\.\d{2}\.\d{4})\s+([\d.,]+)\s*USD\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)\s*USD`)
	// Degraded rows: part + project + qty, USD total somewhere at line end.
	mmciteSimpleRe    = regexp.MustCompile(`(?i)^([A-Z][A-Z0-9\-]+(?:-[A-Z0-9]+)?)\s+(US\d+[A-Z]\d+)\s+(\d+[,.]?\d*)\s*(?:ks|pc)?`)
	mmciteBareRe      = regexp.MustCompile(`(?i)^([A-Z][A-Z0-9\-]+(?:-[A-Z0-9]+)?)\s+(\d+[,.]?\d*)\s*(?:ks|pc)?`)
	mmciteTrailUSDRe  = regexp.MustCompile(`([\d.,]+)\s*USD\s*$`)
	mmciteProjCodeRe  = regexp.MustCompile(`\bUS\d+[A-Z]\d+\b`)
	mmciteQtyUnitRe   = regexp.MustCompile(`(?i)\d+,\d{2}\s*ks\b`)
	mmciteInvoiceRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Proforma\s+invoice\s+no\.?\s*:?\s*([A-Z0-9]+[a-z]?)`),
		regexp.MustCompile(`(?i)Invoice\s+n(?:umber)?\.?\s*:?\s*(\d+(?:/\d+)?)`),
		regexp.MustCompile(`(?i)variable\s+symbol\s*:?\s*(\d+)`),
	}
	mmciteProjectRe = regexp.MustCompile(`(?i)(?:\d+\.\s*)?project\s*(?:n\.?)?\s*:?\s*(US\d+[A-Z]\d+)`)
)

var (
	steelPctRe      = regexp.MustCompile(`(?i)Steel:\s*(\d+(?:[,.]?\d*)?)%`)
	steelKgCompact  = regexp.MustCompile(`(?i)Steel:\s*\d+(?:[,.]?\d*)?%[,\s]*(\d+[,.]?\d*)\s*kg`)
	steelKgSpaced   = regexp.MustCompile(`(?i)Weight of steel:\s*(\d+[,.]?\d*)\s*kg`)
	steelValueRe    = regexp.MustCompile(`(?i)Value of steel:\s*(\d+[,.]?\d*)\s*\$`)
	alumPctRe       = regexp.MustCompile(`(?i)Aluminum:\s*(\d+(?:[,.]?\d*)?)%`)
	alumKgCompact   = regexp.MustCompile(`(?i)Aluminum:\s*\d+(?:[,.]?\d*)?%[,\s]*(\d+[,.]?\d*)\s*kg`)
	alumKgSpaced    = regexp.MustCompile(`(?i)Weight of aluminum:\s*(\d+[,.]?\d*)\s*kg`)
	alumValueRe     = regexp.MustCompile(`(?i)Value of aluminum:\s*(\d+[,.]?\d*)\s*\$`)
	netWeightRe     = regexp.MustCompile(`(?i)Net weight:\s*(\d+[,.]?\d*)\s*kg`)
)

func (Mmcite) Info() template.Info {
	return template.Info{
		Name:        "mmcité",
		Description: "Invoices from mmcité a.s. (Czech Republic) and mmcité Brazil",
		Client:      "mmcité usa",
		Version:     "2.1.0",
		Enabled:     true,
		ExtraColumns: []string{
			constants.FieldSteelPct, constants.FieldSteelKg, constants.FieldSteelValue,
			constants.FieldAluminumPct, constants.FieldAluminumKg, constants.FieldAluminumValue,
			constants.FieldNetWeight,
		},
	}
}

func (Mmcite) CanProcess(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range mmciteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// Structural detection: project codes plus the characteristic Czech
	// quantity unit identify the format even when the header page is missing.
	return mmciteProjCodeRe.MatchString(text) && mmciteQtyUnitRe.MatchString(text)
}

func (t Mmcite) ConfidenceScore(text string) float64 {
	if !t.CanProcess(text) {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0.5
	if strings.Contains(lower, "mmcité") || strings.Contains(lower, "mmcite") {
		score += 0.2
	}
	if mmciteProjCodeRe.MatchString(text) {
		score += 0.1
	}
	if mmciteQtyUnitRe.MatchString(text) {
		score += 0.1
	}
	if strings.Contains(text, "CZK") {
		score += 0.05
	}
	if strings.Contains(lower, "proforma invoice") {
		score += 0.05
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (Mmcite) ExtractInvoiceNumber(text string) string {
	for _, re := range mmciteInvoiceRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return template.Unknown
}

func (Mmcite) ExtractProjectNumber(text string) string {
	if m := mmciteProjectRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := mmciteProjCodeRe.FindString(text); m != "" {
		return strings.ToUpper(m)
	}
	return template.Unknown
}

func (Mmcite) ExtractLineItems(text string) []template.RawItem {
	var items []template.RawItem
	seen := map[string]struct{}{}
	lines := strings.Split(text, "\n")

	add := func(part, qty, total string, lineIdx int) {
		item := template.RawItem{
			constants.FieldPartNumber: part,
			constants.FieldQuantity:   template.NormalizeDecimalComma(qty),
			constants.FieldTotalPrice: template.NormalizeEuroNumber(total),
		}
		for k, v := range materialDataFromContext(lines, lineIdx) {
			item[k] = v
		}
		if _, dup := seen[item.Key()]; dup {
			return
		}
		seen[item.Key()] = struct{}{}
		items = append(items, item)
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "type / desciption") || strings.Contains(lower, "type / description") {
			continue
		}

		if m := mmciteMainRe.FindStringSubmatch(line); m != nil {
			add(m[1], m[3], m[6], i)
			continue
		}
		if m := mmciteProformaRe.FindStringSubmatch(line); m != nil {
			add(m[1], m[2], m[5], i)
			continue
		}
		if m := mmciteBrazilRe.FindStringSubmatch(line); m != nil {
			add(m[1], m[6], m[7], i)
			continue
		}
		if m := mmciteSimpleRe.FindStringSubmatch(line); m != nil {
			if usd := mmciteTrailUSDRe.FindStringSubmatch(line); usd != nil {
				add(m[1], m[3], usd[1], i)
			}
			continue
		}
		if m := mmciteBareRe.FindStringSubmatch(line); m != nil {
			if usd := mmciteTrailUSDRe.FindStringSubmatch(line); usd != nil {
				add(m[1], m[2], usd[1], i)
			}
		}
	}
	return items
}

// materialDataFromContext scans up to four lines past a matched item row for
// the steel/aluminum composition block that mmcité prints under each item.
func materialDataFromContext(lines []string, start int) map[string]string {
	var context strings.Builder
	for j := start + 1; j < len(lines) && j <= start+4; j++ {
		next := strings.TrimSpace(lines[j])
		context.WriteString(" ")
		context.WriteString(next)
		if strings.Contains(next, "Steel:") || strings.Contains(next, "Aluminum:") {
			return extractMaterialData(context.String())
		}
	}
	return extractMaterialData(context.String())
}

// extractMaterialData handles both the compact form
// ("Steel: 100%, 16,76kgValue of steel: 91,88$...") and the spaced form
// ("Steel: 53% Weight of steel: 10,4kg Value of steel: 189,24$ ...").
func extractMaterialData(text string) map[string]string {
	data := map[string]string{}
	pick := func(field string, res ...*regexp.Regexp) {
		for _, re := range res {
			if m := re.FindStringSubmatch(text); m != nil {
				data[field] = template.NormalizeDecimalComma(m[1])
				return
			}
		}
	}
	pick(constants.FieldSteelPct, steelPctRe)
	pick(constants.FieldSteelKg, steelKgCompact, steelKgSpaced)
	pick(constants.FieldSteelValue, steelValueRe)
	pick(constants.FieldAluminumPct, alumPctRe)
	pick(constants.FieldAluminumKg, alumKgCompact, alumKgSpaced)
	pick(constants.FieldAluminumValue, alumValueRe)
	pick(constants.FieldNetWeight, netWeightRe)
	return data
}

func (Mmcite) PostProcessItems(items []template.RawItem) []template.RawItem {
	return template.DedupeItems(items)
}

func (Mmcite) IsPackingList(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice")
}
