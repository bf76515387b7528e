package engine

import (
	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/template"
)

// enrichItems tags a flushed segment's items with the segment's invoice and
// project numbers and merges the bill-of-lading weight:
//
//   - bol_gross_weight is always set when a BOL weight was found;
//   - net_weight falls back to the BOL weight only when absent or empty;
//     an existing non-empty net_weight is never overwritten.
func enrichItems(items []template.RawItem, invoice, project, bolWeight string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, raw := range items {
		item := raw.Clone()
		item[constants.FieldInvoiceNumber] = invoice
		item[constants.FieldProjectNumber] = project
		if bolWeight != "" {
			item[constants.FieldBOLGrossWt] = bolWeight
			if item[constants.FieldNetWeight] == "" {
				item[constants.FieldNetWeight] = bolWeight
			}
		}
		out = append(out, item)
	}
	return out
}
